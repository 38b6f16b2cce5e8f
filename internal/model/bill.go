package model

import "time"

// Bill settles exactly one order, as stored in the `bills` table.
// The 1:1 relationship is enforced by the billing workflow and backed
// by a unique index on bills.order_id. Once a bill exists the order
// becomes immutable (it can no longer be deleted).
//
// Amount is recomputed from the order's lines and the menu prices in
// effect at billing time; it is not a copy of any order-time total.
type Bill struct {
	ID            uint64    `json:"id"`             // bills.id
	OrderID       uint64    `json:"order_id"`       // bills.order_id (unique)
	Amount        float64   `json:"amount"`         // bills.amount
	PaymentMethod string    `json:"payment_method"` // bills.method
	CreatedAt     time.Time `json:"created_at"`     // bills.created_at
}

// PaymentMethods is the closed set of accepted payment-method labels.
// The label is free text as far as the system is concerned; no
// payment processing happens here.
var PaymentMethods = map[string]bool{
	"cash":           true,
	"credit card":    true,
	"debit card":     true,
	"mobile payment": true,
}
