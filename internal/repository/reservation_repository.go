package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-management/internal/model"
)

// ReservationRepo provides read access to reservations outside the
// reservation workflow's transaction.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// GetByID fetches one reservation joined with the customer's name;
// sql.ErrNoRows when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	var res model.Reservation
	err := r.DB.QueryRowContext(ctx,
		`SELECT r.id, r.customer_id, c.name, r.table_id, r.created_at
		 FROM reservations r JOIN customers c ON c.id = r.customer_id
		 WHERE r.id = ?`,
		id).Scan(&res.ID, &res.CustomerID, &res.CustomerName, &res.TableID, &res.CreatedAt)
	return res, err
}

// List returns all active reservations ordered by table.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.customer_id, c.name, r.table_id, r.created_at
		 FROM reservations r JOIN customers c ON c.id = r.customer_id
		 ORDER BY r.table_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.CustomerID, &res.CustomerName, &res.TableID, &res.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
