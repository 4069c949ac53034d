package billing

import (
	"math"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/tandoorclub/foh/internal/tables"
)

// GST is split into state and central halves, both applied to the discounted
// subtotal.
const (
	SGSTRate = 0.025
	CGSTRate = 0.025
)

// Payment methods accepted at checkout. Guest settlement posts the bill to a
// hotel room and requires the guest's name and room number.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentUPI   = "upi"
	PaymentGuest = "guest"
)

// PaymentMethods lists every accepted settlement type.
func PaymentMethods() []string {
	return []string{PaymentCash, PaymentCard, PaymentUPI, PaymentGuest}
}

// Bill is the durable, immutable record of a closed-out table.
type Bill struct {
	ID            uuid.UUID          `json:"id" bson:"_id"`
	BillNo        int                `json:"billNo" bson:"bill_no"`
	TableNo       int                `json:"tableNo" bson:"table_no"`
	Captain       string             `json:"captain" bson:"captain"`
	Covers        int                `json:"covers" bson:"covers"`
	Orders        []tables.OrderLine `json:"orders" bson:"orders"`
	TotalAmount   float64            `json:"totalAmount" bson:"total_amount"`
	Discount      float64            `json:"discount" bson:"discount"`
	PaymentMethod string             `json:"paymentMethod" bson:"payment_method"`
	GuestName     string             `json:"guestName,omitempty" bson:"guest_name,omitempty"`
	RoomNo        string             `json:"roomNo,omitempty" bson:"room_no,omitempty"`
	Tip           float64            `json:"tip" bson:"tip"`
	NetAmount     float64            `json:"netAmount" bson:"net_amount"`
	Timestamp     time.Time          `json:"timestamp" bson:"timestamp"`
}

func (b *Bill) GetID() uuid.UUID {
	return b.ID
}

func (b *Bill) ResourceType() string {
	return "bill"
}

func (b *Bill) SetID(id uuid.UUID) {
	b.ID = id
}

// NewBill creates a bill with a generated ID and the commit timestamp.
func NewBill() *Bill {
	return &Bill{
		ID:        apt.GenerateNewID(),
		Timestamp: time.Now(),
	}
}

// Totals is the server-side billing math for one order snapshot.
type Totals struct {
	Gross          float64
	DiscountAmount float64
	AfterDiscount  float64
	SGST           float64
	CGST           float64
	Net            float64
}

// ComputeTotals derives every monetary figure from the order lines. The
// discount percentage applies before tax; both GST halves apply to the
// discounted subtotal; the tip rides on top untaxed.
func ComputeTotals(orders []tables.OrderLine, discount, tip float64) Totals {
	var gross float64
	for _, line := range orders {
		gross += line.Price * float64(line.Qty)
	}

	discountAmount := gross * discount / 100
	afterDiscount := gross - discountAmount
	sgst := afterDiscount * SGSTRate
	cgst := afterDiscount * CGSTRate

	return Totals{
		Gross:          round2(gross),
		DiscountAmount: round2(discountAmount),
		AfterDiscount:  round2(afterDiscount),
		SGST:           round2(sgst),
		CGST:           round2(cgst),
		Net:            round2(afterDiscount + sgst + cgst + tip),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
