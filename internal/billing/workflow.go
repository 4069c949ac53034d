package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/tandoorclub/foh/internal/tables"
	"github.com/tandoorclub/foh/pkg"
)

const billEventSource = "foh-billing"

// TableCloser is the slice of the table service the workflow needs: resetting
// a table once its bill is durable.
type TableCloser interface {
	ClearTable(ctx context.Context, tableNo int) (tables.Table, error)
}

// Workflow finalizes tables into bills. Bill numbers are advisory until
// commit; the durable store's unique index is the single uniqueness
// checkpoint, so two commits racing for the same number resolve to exactly
// one winner.
type Workflow struct {
	bills     BillRepo
	tables    TableCloser
	publisher events.Publisher
	logger    apt.Logger
}

func NewWorkflow(bills BillRepo, tables TableCloser, publisher events.Publisher, logger apt.Logger) *Workflow {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Workflow{
		bills:     bills,
		tables:    tables,
		publisher: publisher,
		logger:    logger,
	}
}

// NextBillNumber returns max existing + 1, or 1 for an empty ledger. The
// number is not reserved; commit-time uniqueness is the real guard.
func (w *Workflow) NextBillNumber(ctx context.Context) (int, error) {
	max, err := w.bills.MaxBillNo(ctx)
	if err != nil {
		return 0, fmt.Errorf("read last bill number: %w", err)
	}
	return max + 1, nil
}

// CommitBill validates the request, recomputes totals, persists the bill and
// clears the billed table. The returned flag reports whether the clear
// succeeded; a committed bill is never rolled back for a failed clear, the
// table can simply be cleared again.
func (w *Workflow) CommitBill(ctx context.Context, req CommitBillRequest) (*Bill, bool, error) {
	totals := ComputeTotals(req.Orders, req.Discount, req.Tip)

	bill := NewBill()
	bill.BillNo = req.BillNo
	bill.TableNo = req.TableNo
	bill.Captain = req.Captain
	bill.Covers = req.Covers
	bill.Orders = req.Orders
	bill.TotalAmount = totals.Gross
	bill.Discount = req.Discount
	bill.PaymentMethod = req.PaymentMethod
	bill.GuestName = req.GuestName
	bill.RoomNo = req.RoomNo
	bill.Tip = req.Tip
	bill.NetAmount = totals.Net

	if err := w.bills.Create(ctx, bill); err != nil {
		return nil, false, err
	}

	w.publishBillEvent(ctx, bill)

	cleared := true
	if _, err := w.tables.ClearTable(ctx, req.TableNo); err != nil {
		cleared = false
		w.logger.Error("bill committed but table not cleared", "error", err, "bill_no", bill.BillNo, "table_no", req.TableNo)
	}

	return bill, cleared, nil
}

// ListBills returns finalized bills in the inclusive timestamp range, newest
// first.
func (w *Workflow) ListBills(ctx context.Context, start, end time.Time) ([]Bill, error) {
	bills, err := w.bills.ListByTimestampRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

func (w *Workflow) publishBillEvent(ctx context.Context, bill *Bill) {
	if w.publisher == nil {
		return
	}

	event := pkg.BillEvent{
		EventType:   pkg.EventTableBilled,
		BillNo:      bill.BillNo,
		TableNo:     bill.TableNo,
		CaptainName: bill.Captain,
		NetAmount:   bill.NetAmount,
		Source:      billEventSource,
		OccurredAt:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		w.logger.Error("cannot marshal bill event", "error", err, "bill_no", bill.BillNo)
		return
	}

	if err := w.publisher.Publish(ctx, pkg.BillingTopic, data); err != nil {
		w.logger.Error("cannot publish bill event", "error", err, "bill_no", bill.BillNo)
	}
}
