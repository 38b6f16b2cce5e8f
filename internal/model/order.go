package model

import "time"

// Order is an order header as stored in the `orders` table. The
// total amount is not a column: it is always recomputed from the
// order's lines and the current menu prices, so the struct carries
// the computed value only for display.
//
// An order exclusively owns its lines; deleting an order (allowed
// only while no bill exists) cascades to its lines.
type Order struct {
	ID           uint64      `json:"id"`            // orders.id
	EmployeeID   uint64      `json:"employee_id"`   // orders.employee_id
	CustomerID   uint64      `json:"customer_id"`   // orders.customer_id
	CustomerName string      `json:"customer_name"` // joined from customers.name
	Lines        []OrderLine `json:"lines"`         // owned order_lines rows
	Total        float64     `json:"total"`         // computed, never stored
	CreatedAt    time.Time   `json:"created_at"`    // orders.created_at
}

// OrderLine is one (menu item, quantity) pair of an order as stored
// in the `order_lines` table. Name, UnitPrice and Subtotal are a
// materialized snapshot joined from the menu at read time; storage
// holds only the item reference and the quantity.
type OrderLine struct {
	ItemID    uint64  `json:"item_id"`    // order_lines.item_id
	Name      string  `json:"name"`       // joined from menu_items.name
	UnitPrice float64 `json:"unit_price"` // joined from menu_items.price
	Quantity  uint32  `json:"quantity"`   // order_lines.quantity (>= 1)
	Subtotal  float64 `json:"subtotal"`   // computed: unit_price * quantity
}
