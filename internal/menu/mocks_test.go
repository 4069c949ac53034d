package menu

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// MockMenuItemRepo is a test mock for MenuItemRepo
type MockMenuItemRepo struct {
	items map[uuid.UUID]*MenuItem

	CreateFunc         func(ctx context.Context, item *MenuItem) error
	GetFunc            func(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	GetByNameFunc      func(ctx context.Context, name string) (*MenuItem, error)
	ListFunc           func(ctx context.Context) ([]*MenuItem, error)
	ListByCategoryFunc func(ctx context.Context, category string) ([]*MenuItem, error)
	SaveFunc           func(ctx context.Context, item *MenuItem) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func NewMockMenuItemRepo() *MockMenuItemRepo {
	return &MockMenuItemRepo{items: make(map[uuid.UUID]*MenuItem)}
}

func (m *MockMenuItemRepo) Create(ctx context.Context, item *MenuItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	m.items[item.ID] = item
	return nil
}

func (m *MockMenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return m.items[id], nil
}

func (m *MockMenuItemRepo) GetByName(ctx context.Context, name string) (*MenuItem, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	for _, item := range m.items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, nil
}

func (m *MockMenuItemRepo) List(ctx context.Context) ([]*MenuItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	result := make([]*MenuItem, 0, len(m.items))
	for _, item := range m.items {
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockMenuItemRepo) ListByCategory(ctx context.Context, category string) ([]*MenuItem, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(ctx, category)
	}
	var result []*MenuItem
	for _, item := range m.items {
		if item.Category == category {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockMenuItemRepo) Save(ctx context.Context, item *MenuItem) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, item)
	}
	if _, exists := m.items[item.ID]; !exists {
		return errors.New("menu item not found")
	}
	m.items[item.ID] = item
	return nil
}

func (m *MockMenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	if _, exists := m.items[id]; !exists {
		return errors.New("menu item not found")
	}
	delete(m.items, id)
	return nil
}
