package tables

import (
	"context"
	"sync"
)

// MemStore is an in-process TableStore with the same revision semantics as
// the NATS-backed store. It backs tests and the single-node demo mode
// (tables.store=memory).
type MemStore struct {
	mu       sync.Mutex
	tables   []Table
	revision uint64
	count    int
}

// NewMemStore creates an empty store that will lazily initialize count tables
// on first Load.
func NewMemStore(count int) *MemStore {
	if count <= 0 {
		count = DefaultTableCount
	}
	return &MemStore{count: count}
}

func (s *MemStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables == nil {
		s.tables = NewDefaultTables(s.count)
		s.revision = 1
	}

	return Snapshot{Tables: CloneTables(s.tables), Revision: s.revision}, nil
}

func (s *MemStore) Swap(ctx context.Context, tables []Table, revision uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if revision != s.revision {
		return 0, ErrRevisionConflict
	}

	s.tables = CloneTables(tables)
	s.revision++
	return s.revision, nil
}
