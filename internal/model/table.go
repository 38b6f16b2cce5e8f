package model

import "time"

// Table is a physical restaurant table as stored in the
// `restaurant_tables` table. A table holds at most one active
// reservation at a time; that invariant is enforced by the
// reservation workflow and backed by a unique index on
// reservations.table_id.
type Table struct {
	ID        uint64    `json:"id"`       // restaurant_tables.id
	Category  string    `json:"category"` // restaurant_tables.category (Standard|Premium|VIP)
	Price     float64   `json:"price"`    // restaurant_tables.price (reservation fee)
	Capacity  uint32    `json:"capacity"` // restaurant_tables.capacity (seats)
	CreatedAt time.Time `json:"-"`        // restaurant_tables.created_at
}
