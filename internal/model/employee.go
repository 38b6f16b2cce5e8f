package model

import "time"

// Employee roles accepted at signup. The role is carried in the JWT
// role claim and checked by the role middleware.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// Employee is a staff account as stored in the `employees` table.
// Email is unique; the password is stored only as a bcrypt hash.
// Employees ring up orders and are referenced by the orders table.
type Employee struct {
	ID           uint64    `json:"id"`    // employees.id
	Email        string    `json:"email"` // employees.email (unique)
	PasswordHash string    `json:"-"`     // employees.password_hash
	Role         string    `json:"role"`  // employees.role (admin|cashier)
	CreatedAt    time.Time `json:"-"`     // employees.created_at
}
