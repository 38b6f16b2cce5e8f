package model

import "time"

// Reservation binds a customer to a table, as stored in the
// `reservations` table. A table carries at most one reservation at a
// time (unique index on table_id). Reservations are created by the
// reservation workflow and destroyed only by explicit cancellation;
// they are never updated in place.
type Reservation struct {
	ID           uint64    `json:"id"`            // reservations.id
	CustomerID   uint64    `json:"customer_id"`   // reservations.customer_id
	CustomerName string    `json:"customer_name"` // joined from customers.name
	TableID      uint64    `json:"table_id"`      // reservations.table_id (unique)
	CreatedAt    time.Time `json:"created_at"`    // reservations.created_at
}
