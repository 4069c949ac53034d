package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tandoorclub/foh/internal/staff"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique username index. Call once after connect.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("cannot create index: %w", err)
	}
	return nil
}

func (r *UserRepo) Create(ctx context.Context, user *staff.User) error {
	if user == nil {
		return fmt.Errorf("user is nil")
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return staff.ErrUsernameTaken
		}
		return fmt.Errorf("cannot create user: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*staff.User, error) {
	var user staff.User
	err := r.collection.FindOne(ctx, bson.M{"username": staff.NormalizeUsername(username)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get user by username: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*staff.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list users: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*staff.User
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode users: %w", err)
	}

	return result, nil
}

func (r *UserRepo) DeleteByUsername(ctx context.Context, username string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"username": staff.NormalizeUsername(username)})
	if err != nil {
		return fmt.Errorf("cannot delete user: %w", err)
	}

	if result.DeletedCount == 0 {
		return staff.ErrUserNotFound
	}

	return nil
}
