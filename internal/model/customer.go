package model

import "time"

// Customer is a guest identity as stored in the `customers` table.
// A fresh customer row is stamped on every order and every
// reservation; records are intentionally never deduplicated, so two
// orders by the same person produce two customer rows.
type Customer struct {
	ID        uint64    `json:"id"`              // customers.id
	Name      string    `json:"name"`            // customers.name
	Phone     *string   `json:"phone,omitempty"` // customers.phone (nullable)
	CreatedAt time.Time `json:"created_at"`      // customers.created_at
}
