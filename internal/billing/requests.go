package billing

import "github.com/tandoorclub/foh/internal/tables"

// CommitBillRequest carries everything needed to finalize a table into a
// durable bill. The order snapshot comes from the client's last read of the
// table; totals are recomputed server-side and must agree with the payload.
type CommitBillRequest struct {
	TableNo       int                `json:"tableNo"`
	BillNo        int                `json:"billNo"`
	Captain       string             `json:"captain"`
	Covers        int                `json:"covers"`
	Orders        []tables.OrderLine `json:"orders"`
	TotalAmount   float64            `json:"totalAmount"`
	Discount      float64            `json:"discount"`
	PaymentMethod string             `json:"paymentMethod"`
	GuestName     string             `json:"guestName,omitempty"`
	RoomNo        string             `json:"roomNo,omitempty"`
	Tip           float64            `json:"tip"`
	NetAmount     float64            `json:"netAmount"`
}
