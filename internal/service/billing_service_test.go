package service

import (
	"context"
	"testing"

	"github.com/iliyamo/restaurant-management/internal/apperr"
)

func TestCreateBillRecomputesAmount(t *testing.T) {
	cat, runner := newTestEnv()
	emp := cat.addEmployee("cashier@restaurant.com")
	item := cat.addItem("Margherita Pizza", 12.99)
	orders := NewOrderService(cat, runner)
	billing := NewBillingService(cat, runner)

	order, err := orders.PlaceOrder(context.Background(), PlaceOrderRequest{
		EmployeeID: emp, CustomerName: "John Doe",
		Lines: []OrderLineRequest{{ItemID: item, Quantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if order.Total != 25.98 {
		t.Fatalf("order total = %v, want 25.98", order.Total)
	}

	// the menu price changes between order and bill; the bill uses
	// the current price, by policy
	m := cat.items[item]
	m.Price = 14.99
	cat.items[item] = m

	bill, err := billing.CreateBill(context.Background(), CreateBillRequest{
		OrderID: order.ID, PaymentMethod: "credit card",
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if bill.Amount != 29.98 {
		t.Errorf("bill amount = %v, want 29.98 (current price, not order-time)", bill.Amount)
	}
	if bill.OrderID != order.ID {
		t.Errorf("bill order id = %d, want %d", bill.OrderID, order.ID)
	}
}

func TestCreateBillSecondAttemptConflicts(t *testing.T) {
	cat, runner := newTestEnv()
	emp := cat.addEmployee("cashier@restaurant.com")
	item := cat.addItem("Cheese Burger", 10.99)
	orders := NewOrderService(cat, runner)
	billing := NewBillingService(cat, runner)

	order, err := orders.PlaceOrder(context.Background(), PlaceOrderRequest{
		EmployeeID: emp, CustomerName: "John Doe",
		Lines: []OrderLineRequest{{ItemID: item, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := billing.CreateBill(context.Background(), CreateBillRequest{
		OrderID: order.ID, PaymentMethod: "cash",
	}); err != nil {
		t.Fatalf("first bill: %v", err)
	}

	// the second attempt conflicts regardless of payment method
	for _, method := range []string{"cash", "credit card", "debit card", "mobile payment"} {
		_, err := billing.CreateBill(context.Background(), CreateBillRequest{
			OrderID: order.ID, PaymentMethod: method,
		})
		if !apperr.IsKind(err, apperr.KindConflict) {
			t.Errorf("method %q: err = %v, want Conflict", method, err)
		}
	}
	if len(cat.billsByOrder) != 1 {
		t.Errorf("bills = %d, want exactly 1", len(cat.billsByOrder))
	}
}

func TestCreateBillPaymentMethodValidation(t *testing.T) {
	cat, runner := newTestEnv()
	_ = NewBillingService(cat, runner)

	tests := []struct {
		method string
		ok     bool
	}{
		{"cash", true},
		{"credit card", true},
		{"debit card", true},
		{"mobile payment", true},
		{"CASH", true}, // labels are normalized
		{"bitcoin", false},
		{"", false},
		{"check", false},
	}
	for _, tc := range tests {
		t.Run("method "+tc.method, func(t *testing.T) {
			req := CreateBillRequest{OrderID: 1, PaymentMethod: tc.method}
			err := req.validate()
			if tc.ok && err != nil {
				t.Errorf("validate(%q) = %v, want nil", tc.method, err)
			}
			if !tc.ok && !apperr.IsKind(err, apperr.KindInvalidArgument) {
				t.Errorf("validate(%q) = %v, want InvalidArgument", tc.method, err)
			}
		})
	}
}

func TestCreateBillUnknownOrder(t *testing.T) {
	cat, runner := newTestEnv()
	billing := NewBillingService(cat, runner)

	_, err := billing.CreateBill(context.Background(), CreateBillRequest{
		OrderID: 77, PaymentMethod: "cash",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestCreateBillRefusesEmptyOrder(t *testing.T) {
	cat, runner := newTestEnv()
	emp := cat.addEmployee("cashier@restaurant.com")
	item := cat.addItem("Orange Juice", 3.99)
	orders := NewOrderService(cat, runner)
	billing := NewBillingService(cat, runner)

	order, err := orders.PlaceOrder(context.Background(), PlaceOrderRequest{
		EmployeeID: emp, CustomerName: "John Doe",
		Lines: []OrderLineRequest{{ItemID: item, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	// lines vanish out-of-band; billing must refuse, not bill zero
	delete(cat.orderLines, order.ID)

	_, err = billing.CreateBill(context.Background(), CreateBillRequest{
		OrderID: order.ID, PaymentMethod: "cash",
	})
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("err = %v, want InvalidState", err)
	}
	if len(cat.billsByOrder) != 0 {
		t.Error("no bill row may exist for an order with no lines")
	}
}
