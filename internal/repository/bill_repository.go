package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-management/internal/model"
)

// BillRepo provides read access to bills outside the billing
// workflow's transaction.
type BillRepo struct{ DB *sql.DB }

func NewBillRepo(db *sql.DB) *BillRepo { return &BillRepo{DB: db} }

// GetByID fetches one bill; sql.ErrNoRows when absent.
func (r *BillRepo) GetByID(ctx context.Context, id uint64) (model.Bill, error) {
	var b model.Bill
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, order_id, amount, method, created_at FROM bills WHERE id = ?`,
		id).Scan(&b.ID, &b.OrderID, &b.Amount, &b.PaymentMethod, &b.CreatedAt)
	return b, err
}

// List returns all bills, newest first.
func (r *BillRepo) List(ctx context.Context) ([]model.Bill, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, order_id, amount, method, created_at FROM bills
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]model.Bill, 0)
	for rows.Next() {
		var b model.Bill
		if err := rows.Scan(&b.ID, &b.OrderID, &b.Amount, &b.PaymentMethod, &b.CreatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}
