// Package queue defines message payloads exchanged over the message
// broker, the best-effort publisher and the background consumer.
package queue

// OrderPlacedEvent is published when an order commits. It carries
// enough information for downstream consumers to log or notify
// without querying the primary database.
type OrderPlacedEvent struct {
	OrderID      uint64  `json:"order_id"`
	EmployeeID   uint64  `json:"employee_id"`
	CustomerName string  `json:"customer_name"`
	LineCount    int     `json:"line_count"`
	Total        float64 `json:"total"`
	PlacedAt     string  `json:"placed_at"`
}

// BillIssuedEvent is published when a bill commits.
type BillIssuedEvent struct {
	BillID        uint64  `json:"bill_id"`
	OrderID       uint64  `json:"order_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	IssuedAt      string  `json:"issued_at"`
}

// TableReservedEvent is published when a reservation commits.
type TableReservedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	TableID       uint64 `json:"table_id"`
	CustomerName  string `json:"customer_name"`
	ReservedAt    string `json:"reserved_at"`
}
