package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tandoorclub/foh/internal/menu"
)

type MenuItemRepo struct {
	collection *mongo.Collection
}

func NewMenuItemRepo(db *mongo.Database) *MenuItemRepo {
	return &MenuItemRepo{
		collection: db.Collection("menu_items"),
	}
}

func (r *MenuItemRepo) Create(ctx context.Context, item *menu.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("cannot create menu item: %w", err)
	}

	return nil
}

func (r *MenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	var item menu.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get menu item: %w", err)
	}
	return &item, nil
}

func (r *MenuItemRepo) GetByName(ctx context.Context, name string) (*menu.MenuItem, error) {
	var item menu.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get menu item by name: %w", err)
	}
	return &item, nil
}

func (r *MenuItemRepo) List(ctx context.Context) ([]*menu.MenuItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*menu.MenuItem
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode menu items: %w", err)
	}

	return result, nil
}

func (r *MenuItemRepo) ListByCategory(ctx context.Context, category string) ([]*menu.MenuItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, fmt.Errorf("cannot list menu items by category: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*menu.MenuItem
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode menu items: %w", err)
	}

	return result, nil
}

func (r *MenuItemRepo) Save(ctx context.Context, item *menu.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}

	filter := bson.M{"_id": item.ID.String()}
	update := bson.M{"$set": item}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update menu item: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("menu item not found")
	}

	return nil
}

func (r *MenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("cannot delete menu item: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("menu item not found")
	}

	return nil
}

// GetDatabase exposes the underlying database for the seed tracker.
func (r *MenuItemRepo) GetDatabase() *mongo.Database {
	return r.collection.Database()
}
