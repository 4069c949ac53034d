package menu

import (
	"context"
	"strings"
)

func ValidateMenuItemCreate(ctx context.Context, req MenuItemCreateRequest) []string {
	return validateItemFields(req.Name, req.Category, req.Type, req.Price)
}

func ValidateMenuItemUpdate(ctx context.Context, req MenuItemUpdateRequest) []string {
	return validateItemFields(req.Name, req.Category, req.Type, req.Price)
}

func validateItemFields(name, category, itemType string, price float64) []string {
	var errors []string

	if strings.TrimSpace(name) == "" {
		errors = append(errors, "name is required")
	}

	if !contains(Categories(), category) {
		errors = append(errors, "invalid category")
	}

	if !contains(Types(), itemType) {
		errors = append(errors, "type must be veg or nonveg")
	}

	if price <= 0 {
		errors = append(errors, "price must be greater than 0")
	}

	return errors
}

func contains(valid []string, value string) bool {
	for _, v := range valid {
		if v == value {
			return true
		}
	}
	return false
}
