package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-management/internal/model"
	"github.com/iliyamo/restaurant-management/internal/utils"
)

// EmployeeRepo provides access to the employees table for signup and
// login. Passwords are hashed with bcrypt before they reach storage.
type EmployeeRepo struct{ DB *sql.DB }

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

// Create inserts an employee and returns its id. Email is normalized
// to lower case; a duplicate email returns ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO employees (email, password_hash, role) VALUES (?, ?, ?)`,
		email, hash, role)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// GetByEmail fetches an employee by normalized email.
func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (model.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM employees WHERE email = ? LIMIT 1`,
		email).Scan(&e.ID, &e.Email, &e.PasswordHash, &e.Role, &e.CreatedAt)
	return e, err
}

// GetByID fetches an employee by id.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (model.Employee, error) {
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM employees WHERE id = ? LIMIT 1`,
		id).Scan(&e.ID, &e.Email, &e.PasswordHash, &e.Role, &e.CreatedAt)
	return e, err
}
