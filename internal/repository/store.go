package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/restaurant-management/internal/model"
)

// Store is the transactional face of the catalog. Every method
// operates within the caller-supplied *sql.Tx so that a workflow's
// reads and writes form one atomic unit; the transaction runner in
// the service layer owns begin/commit/rollback. Missing rows are
// reported as sql.ErrNoRows and unique-index violations as
// ErrDuplicate; the services translate both into their error
// taxonomy.
type Store struct{}

// NewStore returns a Store. It carries no state of its own; all
// access goes through the transaction handle.
func NewStore() *Store { return &Store{} }

// GetEmployee fetches an employee header by id.
func (s *Store) GetEmployee(ctx context.Context, tx *sql.Tx, id uint64) (model.Employee, error) {
	var e model.Employee
	err := tx.QueryRowContext(ctx,
		`SELECT id, email, role, created_at FROM employees WHERE id = ?`,
		id).Scan(&e.ID, &e.Email, &e.Role, &e.CreatedAt)
	return e, err
}

// GetMenuItem fetches a menu item by id. The price returned is the
// current price; order and bill totals are always computed from it.
func (s *Store) GetMenuItem(ctx context.Context, tx *sql.Tx, id uint64) (model.MenuItem, error) {
	var m model.MenuItem
	err := tx.QueryRowContext(ctx,
		`SELECT id, name, price, category, description, created_at FROM menu_items WHERE id = ?`,
		id).Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Description, &m.CreatedAt)
	return m, err
}

// GetTable fetches a restaurant table by id.
func (s *Store) GetTable(ctx context.Context, tx *sql.Tx, id uint64) (model.Table, error) {
	var t model.Table
	err := tx.QueryRowContext(ctx,
		`SELECT id, category, price, capacity, created_at FROM restaurant_tables WHERE id = ?`,
		id).Scan(&t.ID, &t.Category, &t.Price, &t.Capacity, &t.CreatedAt)
	return t, err
}

// InsertCustomer stamps a fresh customer row and returns its id.
// Customers are never deduplicated; every order and reservation
// creates its own row.
func (s *Store) InsertCustomer(ctx context.Context, tx *sql.Tx, name string, phone *string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO customers (name, phone) VALUES (?, ?)`, name, phone)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// InsertOrder creates an order header and returns its id.
func (s *Store) InsertOrder(ctx context.Context, tx *sql.Tx, employeeID, customerID uint64, at time.Time) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (employee_id, customer_id, created_at) VALUES (?, ?, ?)`,
		employeeID, customerID, at)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// InsertOrderLine attaches one (item, quantity) pair to an order.
func (s *Store) InsertOrderLine(ctx context.Context, tx *sql.Tx, orderID, itemID uint64, quantity uint32) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO order_lines (order_id, item_id, quantity) VALUES (?, ?, ?)`,
		orderID, itemID, quantity)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

// GetOrderHeader fetches an order header (no lines) by id, joined
// with the customer's display name.
func (s *Store) GetOrderHeader(ctx context.Context, tx *sql.Tx, orderID uint64) (model.Order, error) {
	var o model.Order
	err := tx.QueryRowContext(ctx,
		`SELECT o.id, o.employee_id, o.customer_id, c.name, o.created_at
		 FROM orders o JOIN customers c ON c.id = o.customer_id
		 WHERE o.id = ?`,
		orderID).Scan(&o.ID, &o.EmployeeID, &o.CustomerID, &o.CustomerName, &o.CreatedAt)
	return o, err
}

// GetOrderLines re-reads the order's lines joined with the current
// menu prices. The join is the source of every total in the system;
// nothing is read from a stored total.
func (s *Store) GetOrderLines(ctx context.Context, tx *sql.Tx, orderID uint64) ([]model.OrderLine, error) {
	rows, err := tx.QueryContext(ctx,
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

// GetBillByOrder fetches the bill referencing an order, if any.
// sql.ErrNoRows means the order is unbilled.
func (s *Store) GetBillByOrder(ctx context.Context, tx *sql.Tx, orderID uint64) (model.Bill, error) {
	var b model.Bill
	err := tx.QueryRowContext(ctx,
		`SELECT id, order_id, amount, method, created_at FROM bills WHERE order_id = ?`,
		orderID).Scan(&b.ID, &b.OrderID, &b.Amount, &b.PaymentMethod, &b.CreatedAt)
	return b, err
}

// InsertBill creates the bill for an order. The unique index on
// order_id backs the one-bill-per-order invariant even if a second
// writer slips past the in-transaction check.
func (s *Store) InsertBill(ctx context.Context, tx *sql.Tx, orderID uint64, amount float64, method string, at time.Time) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bills (order_id, amount, method, created_at) VALUES (?, ?, ?, ?)`,
		orderID, amount, method, at)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// GetReservationByTable fetches the active reservation for a table,
// if any. sql.ErrNoRows means the table is free.
func (s *Store) GetReservationByTable(ctx context.Context, tx *sql.Tx, tableID uint64) (model.Reservation, error) {
	var r model.Reservation
	err := tx.QueryRowContext(ctx,
		`SELECT r.id, r.customer_id, c.name, r.table_id, r.created_at
		 FROM reservations r JOIN customers c ON c.id = r.customer_id
		 WHERE r.table_id = ?`,
		tableID).Scan(&r.ID, &r.CustomerID, &r.CustomerName, &r.TableID, &r.CreatedAt)
	return r, err
}

// InsertReservation binds a customer to a table. The unique index on
// table_id backs the one-reservation-per-table invariant.
func (s *Store) InsertReservation(ctx context.Context, tx *sql.Tx, customerID, tableID uint64, at time.Time) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (customer_id, table_id, created_at) VALUES (?, ?, ?)`,
		customerID, tableID, at)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// DeleteReservation removes a reservation row. The returned bool
// reports whether a row existed. Customer and table rows are left
// untouched.
func (s *Store) DeleteReservation(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteOrder removes an order and its lines. Callers must have
// verified that no bill references the order; the billing workflow's
// immutability rule is enforced in the service, not here.
func (s *Store) DeleteOrder(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
