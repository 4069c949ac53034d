package tables

import (
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

const (
	// DefaultTableCount is the number of tables the floor is provisioned with.
	DefaultTableCount = 28
	// DefaultDineInMax is the highest table number that seats diners; tables
	// above it are takeaway (parcel) slots.
	DefaultDineInMax = 22

	ClassDineIn = "dine_in"
	ClassParcel = "parcel"
)

// OrderLine is one served item on a table. Lines carry a stable identity so
// removal is unambiguous even when concurrent edits reorder the sequence.
type OrderLine struct {
	LineID uuid.UUID `json:"lineId"`
	Item   string    `json:"item"`
	Qty    int       `json:"qty"`
	Price  float64   `json:"price"`
}

// Table is the live state of one seating unit. The zero value of everything
// but TableNo is the "free" state.
type Table struct {
	TableNo     int         `json:"tableNo"`
	CaptainName string      `json:"captainName"`
	Covers      int         `json:"covers"`
	Order       []OrderLine `json:"order"`
}

// IsFree reports whether the table has no orders in progress.
func (t *Table) IsFree() bool {
	return len(t.Order) == 0
}

// AppendOrder adds a line with a fresh identity and claims the table for the
// captain. The most recent captain to add a line owns the table.
func (t *Table) AppendOrder(item string, price float64, qty int, captain string) OrderLine {
	line := OrderLine{
		LineID: apt.GenerateNewID(),
		Item:   item,
		Qty:    qty,
		Price:  price,
	}
	t.Order = append(t.Order, line)
	t.CaptainName = captain
	return line
}

// RemoveOrder deletes the line with the given identity. Removing the last
// line releases the table: captain and covers are reset.
func (t *Table) RemoveOrder(lineID uuid.UUID) bool {
	for i, line := range t.Order {
		if line.LineID == lineID {
			t.Order = append(t.Order[:i], t.Order[i+1:]...)
			if len(t.Order) == 0 {
				t.Reset()
			}
			return true
		}
	}
	return false
}

// Reset returns the table to its empty state.
func (t *Table) Reset() {
	t.Order = []OrderLine{}
	t.CaptainName = ""
	t.Covers = 0
}

// Clone returns a deep copy so callers can transform state without aliasing
// the slice held by the store.
func (t Table) Clone() Table {
	out := t
	out.Order = make([]OrderLine, len(t.Order))
	copy(out.Order, t.Order)
	return out
}

// Layout describes the fixed floor plan: how many tables exist and where the
// dine-in section ends. Both values are configuration, not code.
type Layout struct {
	Count     int
	DineInMax int
}

// DefaultLayout returns the floor plan the restaurant runs today.
func DefaultLayout() Layout {
	return Layout{Count: DefaultTableCount, DineInMax: DefaultDineInMax}
}

// Classify labels a table number as dine-in or parcel.
func (l Layout) Classify(tableNo int) string {
	if tableNo > l.DineInMax {
		return ClassParcel
	}
	return ClassDineIn
}

// CheckTableNo validates that a table number exists on the floor.
func (l Layout) CheckTableNo(tableNo int) error {
	if tableNo < 1 || tableNo > l.Count {
		return fmt.Errorf("%w: %d", ErrUnknownTable, tableNo)
	}
	return nil
}

// NewDefaultTables builds the initial document: count empty tables numbered
// 1..count in order.
func NewDefaultTables(count int) []Table {
	out := make([]Table, count)
	for i := range out {
		out[i] = Table{TableNo: i + 1, Order: []OrderLine{}}
	}
	return out
}

// CloneTables deep-copies a whole table sequence.
func CloneTables(in []Table) []Table {
	out := make([]Table, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
