package service

import (
	"context"
	"testing"

	"github.com/iliyamo/restaurant-management/internal/apperr"
)

func TestPlaceOrderComputesTotal(t *testing.T) {
	cat, runner := newTestEnv()
	emp := cat.addEmployee("cashier@restaurant.com")
	itemA := cat.addItem("Caesar Salad", 8.99)
	itemB := cat.addItem("Pepperoni Pizza", 12.99)
	svc := NewOrderService(cat, runner)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		EmployeeID:   emp,
		CustomerName: "John Doe",
		Lines: []OrderLineRequest{
			{ItemID: itemA, Quantity: 2},
			{ItemID: itemB, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if order.Total != 30.97 {
		t.Errorf("total = %v, want 30.97", order.Total)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(order.Lines))
	}
	if order.Lines[0].Name != "Caesar Salad" || order.Lines[0].Subtotal != 17.98 {
		t.Errorf("line snapshot = %+v, want Caesar Salad subtotal 17.98", order.Lines[0])
	}
	if runner.commits != 1 || runner.rollbacks != 0 {
		t.Errorf("commits=%d rollbacks=%d, want 1/0", runner.commits, runner.rollbacks)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	cat, runner := newTestEnv()
	emp := cat.addEmployee("cashier@restaurant.com")
	item := cat.addItem("French Fries", 4.99)
	svc := NewOrderService(cat, runner)

	tests := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{"empty lines", PlaceOrderRequest{EmployeeID: emp, CustomerName: "A", Lines: nil}},
		{"zero quantity", PlaceOrderRequest{EmployeeID: emp, CustomerName: "A",
			Lines: []OrderLineRequest{{ItemID: item, Quantity: 0}}}},
		{"missing customer name", PlaceOrderRequest{EmployeeID: emp, CustomerName: "  ",
			Lines: []OrderLineRequest{{ItemID: item, Quantity: 1}}}},
		{"missing employee id", PlaceOrderRequest{CustomerName: "A",
			Lines: []OrderLineRequest{{ItemID: item, Quantity: 1}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), tc.req)
			if !apperr.IsKind(err, apperr.KindInvalidArgument) {
				t.Errorf("err = %v, want InvalidArgument", err)
			}
		})
	}
	if runner.commits != 0 {
		t.Errorf("validation failures must not open a committing transaction, commits=%d", runner.commits)
	}
}

func TestPlaceOrderUnknownEmployee(t *testing.T) {
	cat, runner := newTestEnv()
	item := cat.addItem("Coca Cola", 2.99)
	svc := NewOrderService(cat, runner)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		EmployeeID:   999,
		CustomerName: "John Doe",
		Lines:        []OrderLineRequest{{ItemID: item, Quantity: 1}},
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
	if len(cat.customers) != 0 || len(cat.orders) != 0 {
		t.Error("no rows may persist when the employee is missing")
	}
}

func TestPlaceOrderRollsBackOnMissingItem(t *testing.T) {
	cat, runner := newTestEnv()
	emp := cat.addEmployee("cashier@restaurant.com")
	item := cat.addItem("Classic Burger", 9.99)
	svc := NewOrderService(cat, runner)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		EmployeeID:   emp,
		CustomerName: "John Doe",
		Lines: []OrderLineRequest{
			{ItemID: item, Quantity: 1},
			{ItemID: 424242, Quantity: 3}, // second line refers to nothing
		},
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
	// the whole unit rolls back: no customer, no header, no lines
	if len(cat.customers) != 0 || len(cat.orders) != 0 || len(cat.orderLines) != 0 {
		t.Errorf("partial rows persisted: customers=%d orders=%d lines=%d",
			len(cat.customers), len(cat.orders), len(cat.orderLines))
	}
	if runner.rollbacks != 1 {
		t.Errorf("rollbacks = %d, want 1", runner.rollbacks)
	}
}

func TestPlaceOrderStampsFreshCustomer(t *testing.T) {
	cat, runner := newTestEnv()
	emp := cat.addEmployee("cashier@restaurant.com")
	item := cat.addItem("Onion Rings", 5.99)
	svc := NewOrderService(cat, runner)

	req := PlaceOrderRequest{
		EmployeeID:   emp,
		CustomerName: "Jane Smith",
		Lines:        []OrderLineRequest{{ItemID: item, Quantity: 1}},
	}
	first, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("first order: %v", err)
	}
	second, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("second order: %v", err)
	}
	if first.CustomerID == second.CustomerID {
		t.Error("each order must stamp its own customer row")
	}
}

func TestDeleteOrder(t *testing.T) {
	cat, runner := newTestEnv()
	emp := cat.addEmployee("cashier@restaurant.com")
	item := cat.addItem("Chicken Wings", 11.99)
	orders := NewOrderService(cat, runner)
	billing := NewBillingService(cat, runner)

	billed, err := orders.PlaceOrder(context.Background(), PlaceOrderRequest{
		EmployeeID: emp, CustomerName: "A",
		Lines: []OrderLineRequest{{ItemID: item, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	unbilled, err := orders.PlaceOrder(context.Background(), PlaceOrderRequest{
		EmployeeID: emp, CustomerName: "B",
		Lines: []OrderLineRequest{{ItemID: item, Quantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := billing.CreateBill(context.Background(), CreateBillRequest{
		OrderID: billed.ID, PaymentMethod: "cash",
	}); err != nil {
		t.Fatal(err)
	}

	// a billed order is immutable
	if err := orders.DeleteOrder(context.Background(), billed.ID); !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Errorf("delete billed order: err = %v, want InvalidState", err)
	}
	if _, ok := cat.orders[billed.ID]; !ok {
		t.Error("billed order must survive the refused delete")
	}

	// an unbilled order deletes along with its lines
	if err := orders.DeleteOrder(context.Background(), unbilled.ID); err != nil {
		t.Errorf("delete unbilled order: %v", err)
	}
	if _, ok := cat.orders[unbilled.ID]; ok {
		t.Error("unbilled order should be gone")
	}
	if len(cat.orderLines[unbilled.ID]) != 0 {
		t.Error("order lines must cascade with the order")
	}

	// deleting again reports NotFound
	if err := orders.DeleteOrder(context.Background(), unbilled.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second delete: err = %v, want NotFound", err)
	}
}
