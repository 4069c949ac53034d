package tables

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

const (
	// maxSwapAttempts bounds the CAS retry loop. Conflicts are rare and
	// resolve in one or two retries under realistic contention.
	maxSwapAttempts = 8
	// storeTimeout bounds each cache round trip so a stalled store surfaces
	// as a transient failure instead of a hung request.
	storeTimeout = 5 * time.Second
)

// Service is the only component that mutates the table-state document. Every
// operation is load -> transform -> revision-guarded swap; a lost swap
// re-reads and re-applies, so no logical update is ever silently dropped.
type Service struct {
	store  TableStore
	layout Layout
	logger apt.Logger
}

func NewService(store TableStore, layout Layout, logger apt.Logger) *Service {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if layout.Count <= 0 {
		layout = DefaultLayout()
	}
	return &Service{
		store:  store,
		layout: layout,
		logger: logger,
	}
}

// Layout exposes the configured floor plan.
func (s *Service) Layout() Layout {
	return s.layout
}

// GetTables returns the full current table sequence, initializing the cache
// document on first use.
func (s *Service) GetTables(ctx context.Context) ([]Table, error) {
	snap, err := s.load(ctx)
	if err != nil {
		// Reads are idempotent; one immediate retry absorbs a transient blip.
		if !errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		snap, err = s.load(ctx)
		if err != nil {
			return nil, err
		}
	}
	return snap.Tables, nil
}

// SetCovers updates the diner count for one table and nothing else.
func (s *Service) SetCovers(ctx context.Context, tableNo, covers int) (Table, error) {
	if covers < 0 {
		return Table{}, fmt.Errorf("covers must not be negative, got %d", covers)
	}
	return s.mutate(ctx, tableNo, func(t *Table) error {
		t.Covers = covers
		return nil
	})
}

// AddOrder appends a line to the table and claims it for the captain. The
// returned line carries the identity callers need for later removal.
func (s *Service) AddOrder(ctx context.Context, tableNo int, item string, price float64, qty int, captain string) (Table, OrderLine, error) {
	if qty <= 0 {
		return Table{}, OrderLine{}, fmt.Errorf("quantity must be positive, got %d", qty)
	}
	if price < 0 {
		return Table{}, OrderLine{}, fmt.Errorf("price must not be negative, got %v", price)
	}

	var line OrderLine
	table, err := s.mutate(ctx, tableNo, func(t *Table) error {
		line = t.AppendOrder(item, price, qty, captain)
		return nil
	})
	if err != nil {
		return Table{}, OrderLine{}, err
	}
	return table, line, nil
}

// RemoveOrder deletes a line by its stable identity. Clearing the last line
// releases the table.
func (s *Service) RemoveOrder(ctx context.Context, tableNo int, lineID uuid.UUID) (Table, error) {
	return s.mutate(ctx, tableNo, func(t *Table) error {
		if !t.RemoveOrder(lineID) {
			return fmt.Errorf("%w: %s on table %d", ErrUnknownLine, lineID, tableNo)
		}
		return nil
	})
}

// ClearTable unconditionally resets a table. Invoked after a bill commits.
func (s *Service) ClearTable(ctx context.Context, tableNo int) (Table, error) {
	return s.mutate(ctx, tableNo, func(t *Table) error {
		t.Reset()
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, tableNo int, apply func(t *Table) error) (Table, error) {
	if err := s.layout.CheckTableNo(tableNo); err != nil {
		return Table{}, err
	}

	var lastErr error
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		snap, err := s.load(ctx)
		if err != nil {
			return Table{}, err
		}

		idx := tableNo - 1
		if idx >= len(snap.Tables) {
			return Table{}, fmt.Errorf("%w: %d", ErrUnknownTable, tableNo)
		}

		table := snap.Tables[idx].Clone()
		if err := apply(&table); err != nil {
			return Table{}, err
		}
		snap.Tables[idx] = table

		if _, err := s.swap(ctx, snap.Tables, snap.Revision); err != nil {
			if errors.Is(err, ErrRevisionConflict) {
				lastErr = err
				s.logger.Debug("table state swap lost, retrying", "table_no", tableNo, "attempt", attempt+1)
				continue
			}
			return Table{}, err
		}
		return table, nil
	}

	return Table{}, fmt.Errorf("table %d update abandoned after %d attempts: %w", tableNo, maxSwapAttempts, lastErr)
}

func (s *Service) load(ctx context.Context) (Snapshot, error) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	snap, err := s.store.Load(sctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load table state: %w", err)
	}
	return snap, nil
}

func (s *Service) swap(ctx context.Context, tables []Table, revision uint64) (uint64, error) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rev, err := s.store.Swap(sctx, tables, revision)
	if err != nil {
		if errors.Is(err, ErrRevisionConflict) {
			return 0, err
		}
		return 0, fmt.Errorf("swap table state: %w", err)
	}
	return rev, nil
}
