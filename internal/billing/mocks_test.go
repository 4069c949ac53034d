package billing

import (
	"context"
	"sync"
	"time"

	"github.com/tandoorclub/foh/internal/tables"
)

// MockBillRepo is a test mock for BillRepo
type MockBillRepo struct {
	mu    sync.Mutex
	bills []Bill

	CreateFunc               func(ctx context.Context, bill *Bill) error
	MaxBillNoFunc            func(ctx context.Context) (int, error)
	ListByTimestampRangeFunc func(ctx context.Context, start, end time.Time) ([]Bill, error)
}

func NewMockBillRepo() *MockBillRepo {
	return &MockBillRepo{}
}

func (m *MockBillRepo) Create(ctx context.Context, bill *Bill) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.bills {
		if existing.BillNo == bill.BillNo {
			return ErrDuplicateBillNumber
		}
	}
	m.bills = append(m.bills, *bill)
	return nil
}

func (m *MockBillRepo) MaxBillNo(ctx context.Context) (int, error) {
	if m.MaxBillNoFunc != nil {
		return m.MaxBillNoFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, bill := range m.bills {
		if bill.BillNo > max {
			max = bill.BillNo
		}
	}
	return max, nil
}

func (m *MockBillRepo) ListByTimestampRange(ctx context.Context, start, end time.Time) ([]Bill, error) {
	if m.ListByTimestampRangeFunc != nil {
		return m.ListByTimestampRangeFunc(ctx, start, end)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []Bill
	for _, bill := range m.bills {
		if !bill.Timestamp.Before(start) && !bill.Timestamp.After(end) {
			result = append(result, bill)
		}
	}
	return result, nil
}

// Bills returns a copy of everything committed so far.
func (m *MockBillRepo) Bills() []Bill {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Bill, len(m.bills))
	copy(out, m.bills)
	return out
}

// MockTableCloser is a test mock for TableCloser
type MockTableCloser struct {
	ClearedTables  []int
	ClearTableFunc func(ctx context.Context, tableNo int) (tables.Table, error)
}

func NewMockTableCloser() *MockTableCloser {
	return &MockTableCloser{}
}

func (m *MockTableCloser) ClearTable(ctx context.Context, tableNo int) (tables.Table, error) {
	if m.ClearTableFunc != nil {
		return m.ClearTableFunc(ctx, tableNo)
	}
	m.ClearedTables = append(m.ClearedTables, tableNo)
	return tables.Table{TableNo: tableNo, Order: []tables.OrderLine{}}, nil
}

// MockPublisher is a test mock for events.Publisher
type MockPublisher struct {
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
	m.PublishedEvents = append(m.PublishedEvents, PublishedEvent{Topic: topic, Data: data})
	return nil
}
