package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-management/internal/model"
)

// TableRepo provides read access to restaurant tables for listing.
// Table status is derived, not stored: a table is "reserved" exactly
// when a reservation row references it.
type TableRepo struct{ DB *sql.DB }

func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{DB: db} }

// TableWithStatus is a table plus its derived availability, returned
// by List for display.
type TableWithStatus struct {
	model.Table
	Status        string  `json:"status"`                   // "available" | "reserved"
	ReservationID *uint64 `json:"reservation_id,omitempty"` // set when reserved
}

// List returns every table with its derived status.
func (r *TableRepo) List(ctx context.Context) ([]TableWithStatus, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.category, t.price, t.capacity, t.created_at, res.id
		 FROM restaurant_tables t
		 LEFT JOIN reservations res ON res.table_id = t.id
		 ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]TableWithStatus, 0)
	for rows.Next() {
		var t TableWithStatus
		var resID sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Category, &t.Price, &t.Capacity, &t.CreatedAt, &resID); err != nil {
			return nil, err
		}
		if resID.Valid {
			id := uint64(resID.Int64)
			t.Status = "reserved"
			t.ReservationID = &id
		} else {
			t.Status = "available"
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// GetByID returns one table with its derived status.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (TableWithStatus, error) {
	var t TableWithStatus
	var resID sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		`SELECT t.id, t.category, t.price, t.capacity, t.created_at, res.id
		 FROM restaurant_tables t
		 LEFT JOIN reservations res ON res.table_id = t.id
		 WHERE t.id = ?`, id).
		Scan(&t.ID, &t.Category, &t.Price, &t.Capacity, &t.CreatedAt, &resID)
	if err != nil {
		return TableWithStatus{}, err
	}
	if resID.Valid {
		rid := uint64(resID.Int64)
		t.Status = "reserved"
		t.ReservationID = &rid
	} else {
		t.Status = "available"
	}
	return t, nil
}
