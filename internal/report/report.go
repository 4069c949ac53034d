package report

import (
	"sort"
	"time"

	"github.com/tandoorclub/foh/internal/billing"
)

// SalesSummary aggregates the bills committed inside a reporting window.
type SalesSummary struct {
	Start           time.Time          `json:"start"`
	End             time.Time          `json:"end"`
	BillCount       int                `json:"billCount"`
	Covers          int                `json:"covers"`
	GrossSales      float64            `json:"grossSales"`
	DiscountTotal   float64            `json:"discountTotal"`
	TipTotal        float64            `json:"tipTotal"`
	NetSales        float64            `json:"netSales"`
	ByPaymentMethod map[string]float64 `json:"byPaymentMethod"`
	ByCaptain       []CaptainSales     `json:"byCaptain"`
	TopItems        []ItemSales        `json:"topItems"`
}

// CaptainSales is one captain's share of the window's revenue.
type CaptainSales struct {
	Captain   string  `json:"captain"`
	BillCount int     `json:"billCount"`
	NetSales  float64 `json:"netSales"`
}

// ItemSales counts how often a dish was ordered across the window's bills.
type ItemSales struct {
	Item    string  `json:"item"`
	Qty     int     `json:"qty"`
	Revenue float64 `json:"revenue"`
}

const topItemsLimit = 10

// Summarize folds a list of bills into a sales summary. Discount totals are
// the rupee amounts forgone, not the percentages stored on the bills.
func Summarize(bills []billing.Bill, start, end time.Time) SalesSummary {
	summary := SalesSummary{
		Start:           start,
		End:             end,
		ByPaymentMethod: map[string]float64{},
	}

	captains := map[string]*CaptainSales{}
	items := map[string]*ItemSales{}

	for _, bill := range bills {
		summary.BillCount++
		summary.Covers += bill.Covers
		summary.GrossSales += bill.TotalAmount
		summary.DiscountTotal += bill.TotalAmount * bill.Discount / 100
		summary.TipTotal += bill.Tip
		summary.NetSales += bill.NetAmount

		summary.ByPaymentMethod[bill.PaymentMethod] += bill.NetAmount

		captain, ok := captains[bill.Captain]
		if !ok {
			captain = &CaptainSales{Captain: bill.Captain}
			captains[bill.Captain] = captain
		}
		captain.BillCount++
		captain.NetSales += bill.NetAmount

		for _, line := range bill.Orders {
			item, ok := items[line.Item]
			if !ok {
				item = &ItemSales{Item: line.Item}
				items[line.Item] = item
			}
			item.Qty += line.Qty
			item.Revenue += line.Price * float64(line.Qty)
		}
	}

	summary.ByCaptain = sortedCaptains(captains)
	summary.TopItems = topItems(items, topItemsLimit)

	return summary
}

func sortedCaptains(captains map[string]*CaptainSales) []CaptainSales {
	out := make([]CaptainSales, 0, len(captains))
	for _, c := range captains {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NetSales != out[j].NetSales {
			return out[i].NetSales > out[j].NetSales
		}
		return out[i].Captain < out[j].Captain
	})
	return out
}

func topItems(items map[string]*ItemSales, limit int) []ItemSales {
	out := make([]ItemSales, 0, len(items))
	for _, i := range items {
		out = append(out, *i)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Qty != out[j].Qty {
			return out[i].Qty > out[j].Qty
		}
		return out[i].Item < out[j].Item
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
