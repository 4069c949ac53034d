package menu

// MenuItemCreateRequest creates a new menu item.
type MenuItemCreateRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// MenuItemUpdateRequest replaces the mutable fields of an item.
type MenuItemUpdateRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}
