package model

import "time"

// MenuItem represents a dish or drink offered by the restaurant as
// stored in the `menu_items` table. Prices are kept as DECIMAL(10,2)
// in the database and surface as float64 here; all monetary math in
// the services rounds to two decimals.
//
// Order lines reference menu items by ID, so an item referenced by an
// order must exist at order time. Items may still be updated through
// the menu management endpoints afterwards; totals are always
// recomputed from the current price.
type MenuItem struct {
	ID          uint64    `json:"id"`          // menu_items.id
	Name        string    `json:"name"`        // menu_items.name
	Price       float64   `json:"price"`       // menu_items.price (> 0)
	Category    string    `json:"category"`    // menu_items.category
	Description string    `json:"description"` // menu_items.description
	CreatedAt   time.Time `json:"-"`           // menu_items.created_at
}
