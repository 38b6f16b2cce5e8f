package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-management/internal/model"
)

// CustomerRepo provides access to the customers table outside the
// workflow transactions: the standalone create endpoint and the
// listing used by staff. Workflow-internal customer inserts go
// through Store.InsertCustomer instead.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// Create stamps a new customer row and returns it. Duplicates are
// allowed on purpose: customer identity is per-transaction.
func (r *CustomerRepo) Create(ctx context.Context, name string, phone *string) (model.Customer, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO customers (name, phone) VALUES (?, ?)`, name, phone)
	if err != nil {
		return model.Customer{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Customer{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one customer row.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var c model.Customer
	var phone sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, phone, created_at FROM customers WHERE id = ?`,
		id).Scan(&c.ID, &c.Name, &phone, &c.CreatedAt)
	if phone.Valid {
		p := phone.String
		c.Phone = &p
	}
	return c, err
}

// List returns all customers, newest first.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, phone, created_at FROM customers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		var phone sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		if phone.Valid {
			p := phone.String
			c.Phone = &p
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
