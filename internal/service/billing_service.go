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

// BillingService implements the billing workflow: deriving a bill
// from an existing order under the one-bill-per-order invariant.
type BillingService struct {
	Catalog Catalog
	Tx      TxRunner
}

func NewBillingService(catalog Catalog, tx TxRunner) *BillingService {
	return &BillingService{Catalog: catalog, Tx: tx}
}

// CreateBillRequest is the typed input of CreateBill, validated
// before the transaction opens.
type CreateBillRequest struct {
	OrderID       uint64
	PaymentMethod string
}

func (r *CreateBillRequest) validate() error {
	if r.OrderID == 0 {
		return apperr.InvalidArgument("order_id", "order id is required")
	}
	if !model.PaymentMethods[strings.ToLower(strings.TrimSpace(r.PaymentMethod))] {
		return apperr.InvalidArgument("payment_method",
			"payment method must be one of: cash, credit card, debit card, mobile payment")
	}
	return nil
}

// CreateBill creates the bill for an order as a single atomic unit.
// The amount is a recomputation at billing time from the order's
// lines and the menu prices currently in effect, not a copy of any
// order-time total; if prices changed since the order was placed,
// the bill reflects the new prices. The order read path computes its
// display total the same way, so both surfaces stay consistent.
//
// A second bill for the same order is rejected with the Conflict
// kind, and an order whose lines are gone cannot be billed at all.
func (s *BillingService) CreateBill(ctx context.Context, req CreateBillRequest) (model.Bill, error) {
	if err := req.validate(); err != nil {
		return model.Bill{}, err
	}
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))

	var bill model.Bill
	err := s.Tx.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.Catalog.GetOrderHeader(ctx, tx, req.OrderID); err != nil {
			return notFoundOr(err, "order", req.OrderID)
		}

		_, err := s.Catalog.GetBillByOrder(ctx, tx, req.OrderID)
		switch {
		case err == nil:
			return apperr.Conflict("already_billed", "a bill already exists for this order")
		case errors.Is(err, sql.ErrNoRows):
			// unbilled, proceed
		default:
			return storeErr(err)
		}

		lines, err := s.Catalog.GetOrderLines(ctx, tx, req.OrderID)
		if err != nil {
			return storeErr(err)
		}
		if len(lines) == 0 {
			return apperr.InvalidState("no_lines", "an order with no lines cannot be billed")
		}

		var amount float64
		for _, l := range lines {
			amount += lineTotal(l.UnitPrice, l.Quantity)
		}
		amount = round2(amount)

		now := time.Now().UTC()
		billID, err := s.Catalog.InsertBill(ctx, tx, req.OrderID, amount, method, now)
		if err != nil {
			return billInsertErr(err)
		}
		bill = model.Bill{
			ID:            billID,
			OrderID:       req.OrderID,
			Amount:        amount,
			PaymentMethod: method,
			CreatedAt:     now,
		}
		return nil
	})
	if err != nil {
		return model.Bill{}, err
	}
	return bill, nil
}

// billInsertErr maps a duplicate-key failure from the unique index
// on bills.order_id onto the Conflict kind. The in-transaction check
// already covers serialized execution; the index covers any future
// deployment with parallel writers.
func billInsertErr(err error) error {
	if isDuplicateErr(err) {
		return apperr.Conflict("already_billed", "a bill already exists for this order")
	}
	return storeErr(err)
}
