package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/iliyamo/restaurant-management/internal/apperr"
)

func TestReserveAndDoubleReserve(t *testing.T) {
	cat, runner := newTestEnv()
	table := cat.addTable()
	svc := NewReservationService(cat, runner)

	code := fmt.Sprintf("RES%d", table)
	res, err := svc.Reserve(context.Background(), ReserveRequest{
		TableID: table, PossessionCode: code, CustomerName: "Jane Smith",
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if res.TableID != table {
		t.Errorf("reservation table = %d, want %d", res.TableID, table)
	}
	if res.CustomerName != "Jane Smith" {
		t.Errorf("customer name = %q", res.CustomerName)
	}

	// a second reservation for the same table conflicts even with a
	// valid code
	_, err = svc.Reserve(context.Background(), ReserveRequest{
		TableID: table, PossessionCode: code, CustomerName: "Tom Wilson",
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("second reserve: err = %v, want Conflict", err)
	}
	if len(cat.resByTable) != 1 {
		t.Errorf("reservations = %d, want 1", len(cat.resByTable))
	}
}

func TestReservePossessionCode(t *testing.T) {
	cat, runner := newTestEnv()
	table := cat.addTable()
	svc := NewReservationService(cat, runner)

	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"exact", fmt.Sprintf("RES%d", table), true},
		{"lower case", fmt.Sprintf("res%d", table), true},
		{"mixed case", fmt.Sprintf("Res%d", table), true},
		{"wrong table number", "RES9999", false},
		{"missing prefix", fmt.Sprintf("%d", table), false},
		{"garbage", "OPEN-SESAME", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Reserve(context.Background(), ReserveRequest{
				TableID: table, PossessionCode: tc.code, CustomerName: "Guest",
			})
			if tc.ok {
				if err != nil {
					t.Fatalf("Reserve(%q) = %v, want success", tc.code, err)
				}
				// free the table again for the next case
				res := cat.resByTable[table]
				if err := svc.CancelReservation(context.Background(), res.ID); err != nil {
					t.Fatal(err)
				}
			} else if !apperr.IsKind(err, apperr.KindInvalidArgument) {
				t.Errorf("Reserve(%q) = %v, want InvalidArgument", tc.code, err)
			}
		})
	}
}

func TestReserveUnknownTable(t *testing.T) {
	cat, runner := newTestEnv()
	svc := NewReservationService(cat, runner)

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		TableID: 555, PossessionCode: "RES555", CustomerName: "Guest",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
	if len(cat.customers) != 0 {
		t.Error("no customer row may persist when the table is missing")
	}
}

func TestReserveRollsBackCustomerOnConflict(t *testing.T) {
	cat, runner := newTestEnv()
	table := cat.addTable()
	svc := NewReservationService(cat, runner)

	if _, err := svc.Reserve(context.Background(), ReserveRequest{
		TableID: table, PossessionCode: fmt.Sprintf("RES%d", table), CustomerName: "First",
	}); err != nil {
		t.Fatal(err)
	}
	customersBefore := len(cat.customers)

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		TableID: table, PossessionCode: fmt.Sprintf("RES%d", table), CustomerName: "Second",
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want Conflict", err)
	}
	if len(cat.customers) != customersBefore {
		t.Error("the conflicting attempt must not leave a customer row behind")
	}
}

func TestCancelReservation(t *testing.T) {
	cat, runner := newTestEnv()
	table := cat.addTable()
	svc := NewReservationService(cat, runner)

	res, err := svc.Reserve(context.Background(), ReserveRequest{
		TableID: table, PossessionCode: fmt.Sprintf("RES%d", table), CustomerName: "Guest",
	})
	if err != nil {
		t.Fatal(err)
	}
	customers := len(cat.customers)

	if err := svc.CancelReservation(context.Background(), res.ID); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if len(cat.resByTable) != 0 {
		t.Error("reservation should be gone")
	}
	if len(cat.customers) != customers {
		t.Error("cancellation must not cascade to customer rows")
	}

	// cancelling again reports NotFound
	if err := svc.CancelReservation(context.Background(), res.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second cancel: err = %v, want NotFound", err)
	}

	// the freed table accepts a new reservation
	if _, err := svc.Reserve(context.Background(), ReserveRequest{
		TableID: table, PossessionCode: fmt.Sprintf("res%d", table), CustomerName: "Next Guest",
	}); err != nil {
		t.Errorf("reserve after cancel: %v", err)
	}
}
