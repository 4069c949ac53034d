package pkg

import "time"

const (
	// TableStatusTopic delivers authoritative state changes for tables.
	TableStatusTopic = "tables.status"
	// BillingTopic groups events emitted when a table is billed out.
	BillingTopic = "billing.bills"

	// EventOrderLineAdded identifies an order line appended to a table.
	EventOrderLineAdded = "table.order.added"
	// EventOrderLineRemoved identifies an order line removed from a table.
	EventOrderLineRemoved = "table.order.removed"
	// EventCoversSet identifies a change to a table's cover count.
	EventCoversSet = "table.covers.set"
	// EventTableCleared identifies a table reset to its empty state.
	EventTableCleared = "table.cleared"
	// EventTableBilled identifies a committed bill that closed out a table.
	EventTableBilled = "table.billed"
)

// TableEvent captures the minimal information downstream consumers need to
// reason about a table's live state without re-reading the cache.
type TableEvent struct {
	EventType   string    `json:"event_type"`
	TableNo     int       `json:"table_no"`
	CaptainName string    `json:"captain_name,omitempty"`
	Covers      int       `json:"covers,omitempty"`
	LineID      string    `json:"line_id,omitempty"`
	Item        string    `json:"item,omitempty"`
	Source      string    `json:"source,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BillEvent announces a durably committed bill.
type BillEvent struct {
	EventType   string    `json:"event_type"`
	BillNo      int       `json:"bill_no"`
	TableNo     int       `json:"table_no"`
	CaptainName string    `json:"captain_name"`
	NetAmount   float64   `json:"net_amount"`
	Source      string    `json:"source,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
