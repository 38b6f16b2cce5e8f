package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-management/internal/model"
)

// OrderRepo provides read access to orders outside the workflow
// transactions (listing and detail endpoints). Totals are computed
// by the service from the line snapshots; nothing here reads a
// stored total because none exists.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// GetHeader fetches an order header joined with its customer name;
// sql.ErrNoRows when absent.
func (r *OrderRepo) GetHeader(ctx context.Context, orderID uint64) (model.Order, error) {
	var o model.Order
	err := r.DB.QueryRowContext(ctx,
		`SELECT o.id, o.employee_id, o.customer_id, c.name, o.created_at
		 FROM orders o JOIN customers c ON c.id = o.customer_id
		 WHERE o.id = ?`,
		orderID).Scan(&o.ID, &o.EmployeeID, &o.CustomerID, &o.CustomerName, &o.CreatedAt)
	return o, err
}

// GetLines returns the order's lines joined with current menu name
// and price.
func (r *OrderRepo) GetLines(ctx context.Context, orderID uint64) ([]model.OrderLine, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT l.item_id, m.name, m.price, l.quantity
		 FROM order_lines l JOIN menu_items m ON m.id = l.item_id
		 WHERE l.order_id = ?
		 ORDER BY l.item_id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ItemID, &l.Name, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListHeaders returns all order headers, newest first. Line
// snapshots are loaded per order by the service when building the
// response.
func (r *OrderRepo) ListHeaders(ctx context.Context) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT o.id, o.employee_id, o.customer_id, c.name, o.created_at
		 FROM orders o JOIN customers c ON c.id = o.customer_id
		 ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.EmployeeID, &o.CustomerID, &o.CustomerName, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
