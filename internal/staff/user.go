package staff

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	authpkg "github.com/appetiteclub/apt/auth"
	"github.com/google/uuid"
)

var (
	// ErrUsernameTaken reports a registration against an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUserNotFound reports an operation against a missing user.
	ErrUserNotFound = errors.New("user not found")
)

// User is a captain or admin account. Password material never leaves the
// service: only the salted hash is stored and neither field serializes.
type User struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	PassHash  []byte    `json:"-" bson:"pass_hash"`
	PassSalt  []byte    `json:"-" bson:"pass_salt"`
	IsAdmin   bool      `json:"isAdmin" bson:"is_admin"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) ResourceType() string {
	return "user"
}

func (u *User) SetID(id uuid.UUID) {
	u.ID = id
}

func NewUser() *User {
	return &User{ID: apt.GenerateNewID()}
}

func (u *User) EnsureID() {
	if u.ID == uuid.Nil {
		u.ID = apt.GenerateNewID()
	}
}

func (u *User) BeforeCreate() {
	u.EnsureID()
	u.CreatedAt = time.Now()
	u.Username = NormalizeUsername(u.Username)
}

// NormalizeUsername canonicalizes usernames for uniqueness checks.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// UserRepo is the durable store for staff accounts. Create must enforce
// username uniqueness atomically with the insert and surface ErrUsernameTaken
// on a clash.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

// Register creates a staff account with a salted password hash.
func Register(ctx context.Context, repo UserRepo, username, password string, isAdmin bool) (*User, error) {
	salt := authpkg.GeneratePasswordSalt()
	hash := authpkg.HashPassword([]byte(password), salt)

	user := NewUser()
	user.Username = username
	user.PassHash = hash
	user.PassSalt = salt
	user.IsAdmin = isAdmin
	user.BeforeCreate()

	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyPassword checks a candidate password against the stored hash.
func VerifyPassword(user *User, password string) bool {
	if user == nil {
		return false
	}
	return authpkg.VerifyPasswordHash([]byte(password), user.PassHash, user.PassSalt)
}
