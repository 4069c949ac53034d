package staff

import (
	"context"
	"sort"
)

// MockUserRepo is a test mock for UserRepo
type MockUserRepo struct {
	users map[string]*User

	CreateFunc           func(ctx context.Context, user *User) error
	GetByUsernameFunc    func(ctx context.Context, username string) (*User, error)
	ListFunc             func(ctx context.Context) ([]*User, error)
	DeleteByUsernameFunc func(ctx context.Context, username string) error
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{users: make(map[string]*User)}
}

func (m *MockUserRepo) Create(ctx context.Context, user *User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	if _, exists := m.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	m.users[user.Username] = user
	return nil
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return m.users[NormalizeUsername(username)], nil
}

func (m *MockUserRepo) List(ctx context.Context) ([]*User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	names := make([]string, 0, len(m.users))
	for name := range m.users {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]*User, 0, len(names))
	for _, name := range names {
		result = append(result, m.users[name])
	}
	return result, nil
}

func (m *MockUserRepo) DeleteByUsername(ctx context.Context, username string) error {
	if m.DeleteByUsernameFunc != nil {
		return m.DeleteByUsernameFunc(ctx, username)
	}
	key := NormalizeUsername(username)
	if _, exists := m.users[key]; !exists {
		return ErrUserNotFound
	}
	delete(m.users, key)
	return nil
}
