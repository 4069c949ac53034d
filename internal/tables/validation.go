package tables

import (
	"context"
	"strings"
)

func ValidateSetCovers(ctx context.Context, req SetCoversRequest) []string {
	var errors []string

	if req.Covers < 0 {
		errors = append(errors, "covers must not be negative")
	}

	return errors
}

func ValidateAddOrder(ctx context.Context, req AddOrderRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Item) == "" {
		errors = append(errors, "item is required")
	}

	if req.Qty <= 0 {
		errors = append(errors, "qty must be greater than 0")
	}

	if req.Price < 0 {
		errors = append(errors, "price cannot be negative")
	}

	if strings.TrimSpace(req.Captain) == "" {
		errors = append(errors, "captain is required")
	}

	return errors
}
