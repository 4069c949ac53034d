package tables

import (
	"context"
	"errors"
)

var (
	// ErrUnknownTable reports a table number outside the configured floor plan.
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnknownLine reports an order line identity not present on the table.
	ErrUnknownLine = errors.New("order line not found")
	// ErrRevisionConflict reports a compare-and-swap loss: the document moved
	// between Load and Swap.
	ErrRevisionConflict = errors.New("table state revision conflict")
	// ErrStoreUnavailable categorizes transient store failures; callers may
	// retry with backoff.
	ErrStoreUnavailable = errors.New("table state store unavailable")
)

// Snapshot is a consistent read of the whole table document plus the revision
// it was read at. The revision is the CAS token for Swap.
type Snapshot struct {
	Tables   []Table
	Revision uint64
}

// TableStore holds the single live table-state document. The contract is
// deliberately narrow: whole-document reads and revision-guarded
// whole-document writes. Load must initialize the default document when none
// exists, and initialization must be idempotent under concurrent callers.
type TableStore interface {
	Load(ctx context.Context) (Snapshot, error)
	Swap(ctx context.Context, tables []Table, revision uint64) (uint64, error)
}
