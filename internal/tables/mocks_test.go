package tables

import (
	"context"
	"sync"
)

// MockTableStore is a test mock for TableStore
type MockTableStore struct {
	mu       sync.Mutex
	tables   []Table
	revision uint64
	LoadFunc func(ctx context.Context) (Snapshot, error)
	SwapFunc func(ctx context.Context, tables []Table, revision uint64) (uint64, error)

	LoadCalls int
	SwapCalls int
}

func NewMockTableStore(count int) *MockTableStore {
	return &MockTableStore{
		tables:   NewDefaultTables(count),
		revision: 1,
	}
}

func (m *MockTableStore) Load(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	m.LoadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Tables: CloneTables(m.tables), Revision: m.revision}, nil
}

func (m *MockTableStore) Swap(ctx context.Context, tables []Table, revision uint64) (uint64, error) {
	m.mu.Lock()
	m.SwapCalls++
	m.mu.Unlock()

	if m.SwapFunc != nil {
		return m.SwapFunc(ctx, tables, revision)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if revision != m.revision {
		return 0, ErrRevisionConflict
	}
	m.tables = CloneTables(tables)
	m.revision++
	return m.revision, nil
}

// MockPublisher is a test mock for events.Publisher
type MockPublisher struct {
	mu              sync.Mutex
	PublishedEvents []PublishedEvent
	PublishFunc     func(ctx context.Context, topic string, data []byte) error
}

type PublishedEvent struct {
	Topic string
	Data  []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		PublishedEvents: make([]PublishedEvent, 0),
	}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishedEvents = append(m.PublishedEvents, PublishedEvent{Topic: topic, Data: data})
	return nil
}
