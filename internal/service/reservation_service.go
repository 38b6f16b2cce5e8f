package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-management/internal/apperr"
	"github.com/iliyamo/restaurant-management/internal/model"
	"github.com/iliyamo/restaurant-management/internal/repository"
)

// codePrefix is the fixed prefix of the possession code. The full
// code for table N is "RES<N>", compared case-insensitively. This is
// a placeholder claim check carried over from the original front
// desk flow, not access control: anyone who knows the table number
// can derive the code.
const codePrefix = "RES"

// ReservationService implements the reservation workflow: binding a
// fresh customer to a table under the one-reservation-per-table
// invariant, plus explicit cancellation.
type ReservationService struct {
	Catalog Catalog
	Tx      TxRunner
}

func NewReservationService(catalog Catalog, tx TxRunner) *ReservationService {
	return &ReservationService{Catalog: catalog, Tx: tx}
}

// ReserveRequest is the typed input of Reserve, validated before the
// transaction opens.
type ReserveRequest struct {
	TableID        uint64
	PossessionCode string
	CustomerName   string
	Phone          *string
}

func (r *ReserveRequest) validate() error {
	if r.TableID == 0 {
		return apperr.InvalidArgument("table_id", "table id is required")
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return apperr.InvalidArgument("customer_name", "customer name is required")
	}
	if strings.TrimSpace(r.PossessionCode) == "" {
		return apperr.InvalidArgument("possession_code", "possession code is required")
	}
	return nil
}

// codeMatches checks the possession code against the table id.
func codeMatches(code string, tableID uint64) bool {
	want := fmt.Sprintf("%s%d", codePrefix, tableID)
	return strings.EqualFold(strings.TrimSpace(code), want)
}

// Reserve binds a new customer row to the table as a single atomic
// unit. The table must exist, the possession code must match and the
// table must not already carry a reservation; any failure aborts the
// unit with nothing persisted.
func (s *ReservationService) Reserve(ctx context.Context, req ReserveRequest) (model.Reservation, error) {
	if err := req.validate(); err != nil {
		return model.Reservation{}, err
	}

	var reservation model.Reservation
	err := s.Tx.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.Catalog.GetTable(ctx, tx, req.TableID); err != nil {
			return notFoundOr(err, "table", req.TableID)
		}
		if !codeMatches(req.PossessionCode, req.TableID) {
			return apperr.InvalidArgument("possession_code", "possession code does not match the table")
		}

		_, err := s.Catalog.GetReservationByTable(ctx, tx, req.TableID)
		switch {
		case err == nil:
			return apperr.Conflict("table_reserved", "the table already has a reservation")
		case errors.Is(err, sql.ErrNoRows):
			// table is free, proceed
		default:
			return storeErr(err)
		}

		name := strings.TrimSpace(req.CustomerName)
		customerID, err := s.Catalog.InsertCustomer(ctx, tx, name, req.Phone)
		if err != nil {
			return storeErr(err)
		}

		now := time.Now().UTC()
		resID, err := s.Catalog.InsertReservation(ctx, tx, customerID, req.TableID, now)
		if err != nil {
			if isDuplicateErr(err) {
				return apperr.Conflict("table_reserved", "the table already has a reservation")
			}
			return storeErr(err)
		}
		reservation = model.Reservation{
			ID:           resID,
			CustomerID:   customerID,
			CustomerName: name,
			TableID:      req.TableID,
			CreatedAt:    now,
		}
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return reservation, nil
}

// CancelReservation deletes a reservation. Customer and table rows
// are untouched; there is nothing to cascade.
func (s *ReservationService) CancelReservation(ctx context.Context, reservationID uint64) error {
	return s.Tx.InTx(ctx, func(tx *sql.Tx) error {
		deleted, err := s.Catalog.DeleteReservation(ctx, tx, reservationID)
		if err != nil {
			return storeErr(err)
		}
		if !deleted {
			return apperr.NotFound("reservation", reservationID)
		}
		return nil
	})
}

// isDuplicateErr reports whether the store rejected an insert on a
// unique index.
func isDuplicateErr(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}
