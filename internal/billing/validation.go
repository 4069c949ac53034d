package billing

import (
	"context"
	"fmt"
	"math"
	"strings"
)

func ValidateCommitBill(ctx context.Context, req CommitBillRequest) []string {
	var errors []string

	if req.TableNo <= 0 {
		errors = append(errors, "tableNo is required")
	}

	if req.BillNo <= 0 {
		errors = append(errors, "billNo is required")
	}

	if strings.TrimSpace(req.Captain) == "" {
		errors = append(errors, "captain is required")
	}

	if req.Covers < 0 {
		errors = append(errors, "covers cannot be negative")
	}

	if len(req.Orders) == 0 {
		errors = append(errors, "orders must not be empty")
	}

	for i, line := range req.Orders {
		if strings.TrimSpace(line.Item) == "" {
			errors = append(errors, fmt.Sprintf("orders[%d].item is required", i))
		}
		if line.Qty <= 0 {
			errors = append(errors, fmt.Sprintf("orders[%d].qty must be greater than 0", i))
		}
		if line.Price < 0 {
			errors = append(errors, fmt.Sprintf("orders[%d].price cannot be negative", i))
		}
	}

	if req.Discount < 0 || req.Discount > 100 {
		errors = append(errors, "discount must be between 0 and 100")
	}

	if req.Tip < 0 {
		errors = append(errors, "tip cannot be negative")
	}

	if !validPaymentMethod(req.PaymentMethod) {
		errors = append(errors, "paymentMethod must be one of cash, card, upi, guest")
	}

	if req.PaymentMethod == PaymentGuest {
		if strings.TrimSpace(req.GuestName) == "" {
			errors = append(errors, "guestName is required for guest payment")
		}
		if strings.TrimSpace(req.RoomNo) == "" {
			errors = append(errors, "roomNo is required for guest payment")
		}
	}

	if len(errors) > 0 {
		return errors
	}

	// The client presents its own math on the printed bill; refuse to commit
	// figures that disagree with the authoritative computation.
	totals := ComputeTotals(req.Orders, req.Discount, req.Tip)
	if math.Abs(totals.Gross-req.TotalAmount) > 0.01 {
		errors = append(errors, fmt.Sprintf("totalAmount %.2f does not match computed total %.2f", req.TotalAmount, totals.Gross))
	}
	if math.Abs(totals.Net-req.NetAmount) > 0.01 {
		errors = append(errors, fmt.Sprintf("netAmount %.2f does not match computed net %.2f", req.NetAmount, totals.Net))
	}

	return errors
}

func validPaymentMethod(method string) bool {
	for _, m := range PaymentMethods() {
		if method == m {
			return true
		}
	}
	return false
}
