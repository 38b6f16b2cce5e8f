package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-management/internal/model"
)

// MenuRepo provides CRUD access to the menu_items table for the menu
// management endpoints. Reads here run outside any workflow
// transaction and may execute concurrently with writes.
type MenuRepo struct{ DB *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{DB: db} }

// List returns the full menu ordered by category then name.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, price, category, description, created_at
		 FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.MenuItem, 0)
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Description, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// GetByID fetches one menu item; sql.ErrNoRows when absent.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (model.MenuItem, error) {
	var m model.MenuItem
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, price, category, description, created_at FROM menu_items WHERE id = ?`,
		id).Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Description, &m.CreatedAt)
	return m, err
}

// Create inserts a menu item and returns its id.
func (r *MenuRepo) Create(ctx context.Context, name string, price float64, category, description string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO menu_items (name, price, category, description) VALUES (?, ?, ?, ?)`,
		name, price, category, description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// Update replaces all mutable fields of a menu item. The returned
// bool reports whether the item existed.
func (r *MenuRepo) Update(ctx context.Context, id uint64, name string, price float64, category, description string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE menu_items SET name = ?, price = ?, category = ?, description = ? WHERE id = ?`,
		name, price, category, description, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	// RowsAffected is 0 both for a missing row and for a no-op update,
	// so check existence when nothing changed.
	if err == nil && n == 0 {
		var exists uint64
		err2 := r.DB.QueryRowContext(ctx, `SELECT id FROM menu_items WHERE id = ?`, id).Scan(&exists)
		if err2 == sql.ErrNoRows {
			return false, nil
		}
		return err2 == nil, err2
	}
	return n > 0, err
}

// Delete removes a menu item. The returned bool reports whether a
// row existed. Items referenced by order lines are protected by the
// foreign key and the delete fails.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Categories returns the distinct menu categories in order.
func (r *MenuRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT DISTINCT category FROM menu_items ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
