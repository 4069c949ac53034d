package billing

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateBillNumber reports a commit that lost the bill-number race; the
// caller must fetch a fresh number and retry.
var ErrDuplicateBillNumber = errors.New("bill number already exists")

// BillRepo is the durable store for finalized bills. Create must enforce
// bill-number uniqueness atomically with the insert and surface
// ErrDuplicateBillNumber on a clash.
type BillRepo interface {
	Create(ctx context.Context, bill *Bill) error
	MaxBillNo(ctx context.Context) (int, error)
	ListByTimestampRange(ctx context.Context, start, end time.Time) ([]Bill, error)
}
