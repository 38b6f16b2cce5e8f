// Package service implements the three transactional workflows of
// the system: placing an order, billing an order and reserving a
// table. Each workflow validates its typed request, then runs all
// reads and writes inside exactly one transaction obtained from the
// Coordinator, so that either every row lands or none does.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-management/internal/apperr"
	"github.com/iliyamo/restaurant-management/internal/model"
	"github.com/iliyamo/restaurant-management/internal/repository"
)

// Catalog is the storage boundary consumed by the workflows. Every
// operation runs within the caller-supplied transaction scope. The
// MySQL implementation lives in the repository package; tests supply
// an in-memory fake.
//
// Missing rows surface as sql.ErrNoRows and unique-index violations
// as repository.ErrDuplicate; the workflows translate both into the
// apperr taxonomy.
type Catalog interface {
	GetEmployee(ctx context.Context, tx *sql.Tx, id uint64) (model.Employee, error)
	GetMenuItem(ctx context.Context, tx *sql.Tx, id uint64) (model.MenuItem, error)
	GetTable(ctx context.Context, tx *sql.Tx, id uint64) (model.Table, error)
	InsertCustomer(ctx context.Context, tx *sql.Tx, name string, phone *string) (uint64, error)
	InsertOrder(ctx context.Context, tx *sql.Tx, employeeID, customerID uint64, at time.Time) (uint64, error)
	InsertOrderLine(ctx context.Context, tx *sql.Tx, orderID, itemID uint64, quantity uint32) error
	GetOrderHeader(ctx context.Context, tx *sql.Tx, orderID uint64) (model.Order, error)
	GetOrderLines(ctx context.Context, tx *sql.Tx, orderID uint64) ([]model.OrderLine, error)
	GetBillByOrder(ctx context.Context, tx *sql.Tx, orderID uint64) (model.Bill, error)
	InsertBill(ctx context.Context, tx *sql.Tx, orderID uint64, amount float64, method string, at time.Time) (uint64, error)
	GetReservationByTable(ctx context.Context, tx *sql.Tx, tableID uint64) (model.Reservation, error)
	InsertReservation(ctx context.Context, tx *sql.Tx, customerID, tableID uint64, at time.Time) (uint64, error)
	DeleteReservation(ctx context.Context, tx *sql.Tx, id uint64) (bool, error)
	DeleteOrder(ctx context.Context, tx *sql.Tx, id uint64) (bool, error)
}

// storeErr maps a raw storage failure onto the error taxonomy. A
// deadline expiry becomes the retryable Timeout kind; everything
// else is Internal.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Timeout(err)
	}
	return apperr.Internal(err)
}

// notFoundOr returns NotFound for a missing row of the named entity
// and storeErr otherwise.
func notFoundOr(err error, entity string, id uint64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity, id)
	}
	return storeErr(err)
}

var _ Catalog = (*repository.Store)(nil)
