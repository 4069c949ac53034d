package tables

// SetCoversRequest updates the diner headcount for a table.
type SetCoversRequest struct {
	Covers int `json:"covers"`
}

// AddOrderRequest appends one order line to a table.
type AddOrderRequest struct {
	Item    string  `json:"item"`
	Price   float64 `json:"price"`
	Qty     int     `json:"qty"`
	Captain string  `json:"captain"`
}
