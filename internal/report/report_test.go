package report

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tandoorclub/foh/internal/billing"
	"github.com/tandoorclub/foh/internal/tables"
)

func line(item string, price float64, qty int) tables.OrderLine {
	return tables.OrderLine{LineID: uuid.New(), Item: item, Price: price, Qty: qty}
}

func TestSummarizeEmpty(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	summary := Summarize(nil, start, end)

	if summary.BillCount != 0 || summary.NetSales != 0 {
		t.Errorf("empty window should produce zero summary, got %+v", summary)
	}
	if summary.Start != start || summary.End != end {
		t.Error("summary should echo the window bounds")
	}
	if summary.ByPaymentMethod == nil {
		t.Error("payment breakdown map should be initialized")
	}
}

func TestSummarize(t *testing.T) {
	bills := []billing.Bill{
		{
			BillNo:        1,
			Captain:       "asha",
			Covers:        2,
			Orders:        []tables.OrderLine{line("Butter Chicken", 340, 1), line("Masala Chai", 60, 2)},
			TotalAmount:   460,
			Discount:      0,
			PaymentMethod: billing.PaymentCash,
			Tip:           20,
			NetAmount:     503,
		},
		{
			BillNo:        2,
			Captain:       "ravi",
			Covers:        4,
			Orders:        []tables.OrderLine{line("Butter Chicken", 340, 2)},
			TotalAmount:   680,
			Discount:      10,
			PaymentMethod: billing.PaymentCard,
			Tip:           0,
			NetAmount:     642.6,
		},
		{
			BillNo:        3,
			Captain:       "asha",
			Covers:        1,
			Orders:        []tables.OrderLine{line("Kulfi", 130, 1)},
			TotalAmount:   130,
			Discount:      0,
			PaymentMethod: billing.PaymentCash,
			Tip:           0,
			NetAmount:     136.5,
		},
	}

	summary := Summarize(bills, time.Time{}, time.Time{})

	if summary.BillCount != 3 {
		t.Errorf("BillCount = %d, want 3", summary.BillCount)
	}
	if summary.Covers != 7 {
		t.Errorf("Covers = %d, want 7", summary.Covers)
	}
	if summary.GrossSales != 1270 {
		t.Errorf("GrossSales = %v, want 1270", summary.GrossSales)
	}
	if summary.DiscountTotal != 68 {
		t.Errorf("DiscountTotal = %v, want 68", summary.DiscountTotal)
	}
	if summary.TipTotal != 20 {
		t.Errorf("TipTotal = %v, want 20", summary.TipTotal)
	}
	if math.Abs(summary.NetSales-1282.1) > 0.001 {
		t.Errorf("NetSales = %v, want 1282.1", summary.NetSales)
	}

	if got := summary.ByPaymentMethod[billing.PaymentCash]; got != 639.5 {
		t.Errorf("cash total = %v, want 639.5", got)
	}
	if got := summary.ByPaymentMethod[billing.PaymentCard]; got != 642.6 {
		t.Errorf("card total = %v, want 642.6", got)
	}

	if len(summary.ByCaptain) != 2 {
		t.Fatalf("expected 2 captains, got %d", len(summary.ByCaptain))
	}
	// Sorted by net sales, highest first.
	if summary.ByCaptain[0].Captain != "ravi" || summary.ByCaptain[0].BillCount != 1 {
		t.Errorf("top captain = %+v, want ravi with 1 bill", summary.ByCaptain[0])
	}
	if summary.ByCaptain[1].Captain != "asha" || summary.ByCaptain[1].BillCount != 2 {
		t.Errorf("second captain = %+v, want asha with 2 bills", summary.ByCaptain[1])
	}

	if len(summary.TopItems) != 3 {
		t.Fatalf("expected 3 items, got %d", len(summary.TopItems))
	}
	if summary.TopItems[0].Item != "Butter Chicken" || summary.TopItems[0].Qty != 3 {
		t.Errorf("top item = %+v, want Butter Chicken x3", summary.TopItems[0])
	}
	if summary.TopItems[0].Revenue != 1020 {
		t.Errorf("top item revenue = %v, want 1020", summary.TopItems[0].Revenue)
	}
}

func TestSummarizeTopItemsLimit(t *testing.T) {
	var orders []tables.OrderLine
	for i := 0; i < 15; i++ {
		orders = append(orders, line(string(rune('A'+i)), 10, i+1))
	}
	bills := []billing.Bill{{BillNo: 1, Captain: "asha", Orders: orders}}

	summary := Summarize(bills, time.Time{}, time.Time{})

	if len(summary.TopItems) != topItemsLimit {
		t.Fatalf("expected %d top items, got %d", topItemsLimit, len(summary.TopItems))
	}
	// Highest quantity first.
	if summary.TopItems[0].Qty != 15 {
		t.Errorf("first item qty = %d, want 15", summary.TopItems[0].Qty)
	}
	for i := 1; i < len(summary.TopItems); i++ {
		if summary.TopItems[i].Qty > summary.TopItems[i-1].Qty {
			t.Error("top items should be sorted by quantity descending")
			break
		}
	}
}
