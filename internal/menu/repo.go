package menu

import (
	"context"

	"github.com/google/uuid"
)

// MenuItemRepo defines the repository interface for menu items.
type MenuItemRepo interface {
	Create(ctx context.Context, item *MenuItem) error
	Get(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	GetByName(ctx context.Context, name string) (*MenuItem, error)
	List(ctx context.Context) ([]*MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]*MenuItem, error)
	Save(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
