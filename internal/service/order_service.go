package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-management/internal/apperr"
	"github.com/iliyamo/restaurant-management/internal/model"
)

// OrderService implements the order workflow: atomic creation of a
// customer, an order header and its lines, and the guarded delete.
type OrderService struct {
	Catalog Catalog
	Tx      TxRunner
}

func NewOrderService(catalog Catalog, tx TxRunner) *OrderService {
	return &OrderService{Catalog: catalog, Tx: tx}
}

// PlaceOrderRequest is the typed input of PlaceOrder, validated in
// full before the transaction opens.
type PlaceOrderRequest struct {
	EmployeeID   uint64
	CustomerName string
	Phone        *string
	Lines        []OrderLineRequest
}

// OrderLineRequest is one requested (item, quantity) pair. The item
// price is never part of the request: pricing comes from the menu at
// order time, which keeps stale or forged client prices out of the
// total.
type OrderLineRequest struct {
	ItemID   uint64
	Quantity uint32
}

// validate checks the request shape. Referential checks (employee,
// menu items) happen inside the transaction.
func (r *PlaceOrderRequest) validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return apperr.InvalidArgument("customer_name", "customer name is required")
	}
	if r.EmployeeID == 0 {
		return apperr.InvalidArgument("employee_id", "employee id is required")
	}
	if len(r.Lines) == 0 {
		return apperr.InvalidArgument("lines", "an order needs at least one line")
	}
	for _, l := range r.Lines {
		if l.ItemID == 0 {
			return apperr.InvalidArgument("lines", "item id is required on every line")
		}
		if l.Quantity == 0 {
			return apperr.InvalidArgument("lines", "quantity must be positive")
		}
	}
	return nil
}

// PlaceOrder creates a customer row, an order header and one line
// per request entry as a single atomic unit. Every line re-fetches
// the menu item's current price; a missing employee or item aborts
// the whole unit and nothing persists. On success the returned order
// carries the materialized name/price/subtotal snapshot of each line
// and the total, rounded to two decimals.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (model.Order, error) {
	if err := req.validate(); err != nil {
		return model.Order{}, err
	}

	var order model.Order
	err := s.Tx.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.Catalog.GetEmployee(ctx, tx, req.EmployeeID); err != nil {
			return notFoundOr(err, "employee", req.EmployeeID)
		}

		customerID, err := s.Catalog.InsertCustomer(ctx, tx, strings.TrimSpace(req.CustomerName), req.Phone)
		if err != nil {
			return storeErr(err)
		}

		now := time.Now().UTC()
		orderID, err := s.Catalog.InsertOrder(ctx, tx, req.EmployeeID, customerID, now)
		if err != nil {
			return storeErr(err)
		}

		lines := make([]model.OrderLine, 0, len(req.Lines))
		var total float64
		for _, l := range req.Lines {
			item, err := s.Catalog.GetMenuItem(ctx, tx, l.ItemID)
			if err != nil {
				return notFoundOr(err, "menu item", l.ItemID)
			}
			if err := s.Catalog.InsertOrderLine(ctx, tx, orderID, l.ItemID, l.Quantity); err != nil {
				return storeErr(err)
			}
			sub := lineTotal(item.Price, l.Quantity)
			total += sub
			lines = append(lines, model.OrderLine{
				ItemID:    item.ID,
				Name:      item.Name,
				UnitPrice: item.Price,
				Quantity:  l.Quantity,
				Subtotal:  sub,
			})
		}

		order = model.Order{
			ID:           orderID,
			EmployeeID:   req.EmployeeID,
			CustomerID:   customerID,
			CustomerName: strings.TrimSpace(req.CustomerName),
			Lines:        lines,
			Total:        round2(total),
			CreatedAt:    now,
		}
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// DeleteOrder removes an order and its lines. An order with a bill
// is immutable: the delete is refused with the InvalidState kind and
// nothing changes.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uint64) error {
	return s.Tx.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.Catalog.GetOrderHeader(ctx, tx, orderID); err != nil {
			return notFoundOr(err, "order", orderID)
		}
		_, err := s.Catalog.GetBillByOrder(ctx, tx, orderID)
		switch {
		case err == nil:
			return apperr.InvalidState("billed", "a billed order cannot be deleted")
		case errors.Is(err, sql.ErrNoRows):
			// unbilled, delete may proceed
		default:
			return storeErr(err)
		}
		deleted, err := s.Catalog.DeleteOrder(ctx, tx, orderID)
		if err != nil {
			return storeErr(err)
		}
		if !deleted {
			return apperr.NotFound("order", orderID)
		}
		return nil
	})
}
