package menu

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Menu categories, in the order the kitchen prints them.
const (
	CategorySoups      = "soups"
	CategoryStarters   = "starters"
	CategoryTandoori   = "tandoori"
	CategoryMainCourse = "main course"
	CategoryBeverages  = "beverages"
	CategoryDesserts   = "desserts"
)

const (
	TypeVeg    = "veg"
	TypeNonVeg = "nonveg"
)

// Categories lists every valid menu category.
func Categories() []string {
	return []string{
		CategorySoups,
		CategoryStarters,
		CategoryTandoori,
		CategoryMainCourse,
		CategoryBeverages,
		CategoryDesserts,
	}
}

// Types lists the dietary types.
func Types() []string {
	return []string{TypeVeg, TypeNonVeg}
}

// MenuItem is a dish or drink offered for ordering. Tables reference items by
// name and price only; there is no hard link back from orders.
type MenuItem struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Category    string    `json:"category" bson:"category"`
	Type        string    `json:"type" bson:"type"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (m *MenuItem) GetID() uuid.UUID {
	return m.ID
}

func (m *MenuItem) ResourceType() string {
	return "menu-item"
}

func (m *MenuItem) SetID(id uuid.UUID) {
	m.ID = id
}

func NewMenuItem() *MenuItem {
	return &MenuItem{ID: apt.GenerateNewID()}
}

func (m *MenuItem) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = apt.GenerateNewID()
	}
}

func (m *MenuItem) BeforeCreate() {
	m.EnsureID()
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
}

func (m *MenuItem) BeforeUpdate() {
	m.UpdatedAt = time.Now()
}
