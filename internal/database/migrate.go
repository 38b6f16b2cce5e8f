package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Migration is one versioned schema step. Migrations run in slice
// order at startup; each is recorded in schema_migrations after it
// succeeds and skipped on every later start, so the list can only
// grow at the tail.
type Migration struct {
	Name string
	SQL  []string
}

// migrations is the full, ordered history of the schema. Earlier
// ad hoc alterations (customer phone, table details) are folded in
// as explicit steps so that an old database upgrades the same way a
// fresh one bootstraps.
var migrations = []Migration{
	{
		Name: "0001_core_tables",
		SQL: []string{
			`CREATE TABLE IF NOT EXISTS menu_items (
				id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				price DECIMAL(10,2) NOT NULL,
				category VARCHAR(100) NOT NULL,
				description TEXT NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS customers (
				id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS employees (
				id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				email VARCHAR(255) NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				role ENUM('admin','cashier') NOT NULL DEFAULT 'cashier',
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE KEY uq_employees_email (email)
			)`,
			`CREATE TABLE IF NOT EXISTS restaurant_tables (
				id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS orders (
				id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				employee_id BIGINT UNSIGNED NOT NULL,
				customer_id BIGINT UNSIGNED NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				CONSTRAINT fk_orders_employee FOREIGN KEY (employee_id) REFERENCES employees (id),
				CONSTRAINT fk_orders_customer FOREIGN KEY (customer_id) REFERENCES customers (id)
			)`,
			`CREATE TABLE IF NOT EXISTS order_lines (
				order_id BIGINT UNSIGNED NOT NULL,
				item_id BIGINT UNSIGNED NOT NULL,
				quantity INT UNSIGNED NOT NULL,
				PRIMARY KEY (order_id, item_id),
				CONSTRAINT fk_lines_order FOREIGN KEY (order_id) REFERENCES orders (id),
				CONSTRAINT fk_lines_item FOREIGN KEY (item_id) REFERENCES menu_items (id)
			)`,
			`CREATE TABLE IF NOT EXISTS bills (
				id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				order_id BIGINT UNSIGNED NOT NULL,
				amount DECIMAL(10,2) NOT NULL,
				method VARCHAR(50) NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE KEY uq_bills_order (order_id),
				CONSTRAINT fk_bills_order FOREIGN KEY (order_id) REFERENCES orders (id)
			)`,
			`CREATE TABLE IF NOT EXISTS reservations (
				id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				customer_id BIGINT UNSIGNED NOT NULL,
				table_id BIGINT UNSIGNED NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE KEY uq_reservations_table (table_id),
				CONSTRAINT fk_reservations_customer FOREIGN KEY (customer_id) REFERENCES customers (id),
				CONSTRAINT fk_reservations_table FOREIGN KEY (table_id) REFERENCES restaurant_tables (id)
			)`,
			`CREATE TABLE IF NOT EXISTS reviews (
				id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				rating TINYINT UNSIGNED NOT NULL,
				comment TEXT NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		Name: "0002_customer_phone",
		SQL: []string{
			`ALTER TABLE customers ADD COLUMN phone VARCHAR(50) NULL`,
		},
	},
	{
		Name: "0003_table_details",
		SQL: []string{
			`ALTER TABLE restaurant_tables
				ADD COLUMN category VARCHAR(50) NOT NULL DEFAULT 'Standard',
				ADD COLUMN price DECIMAL(10,2) NOT NULL DEFAULT 2.00,
				ADD COLUMN capacity INT UNSIGNED NOT NULL DEFAULT 4`,
		},
	},
	{
		Name: "0004_seed_data",
		SQL: []string{
			`INSERT INTO menu_items (name, price, category, description) VALUES
				('Margherita Pizza', 12.99, 'Pizza', 'Classic pizza with tomato sauce, mozzarella, and basil'),
				('Pepperoni Pizza', 14.99, 'Pizza', 'Loaded with pepperoni and mozzarella cheese'),
				('Classic Burger', 9.99, 'Burgers', 'Beef patty with lettuce, tomato, and special sauce'),
				('Cheese Burger', 10.99, 'Burgers', 'Beef patty with double cheese, lettuce, and pickles'),
				('French Fries', 4.99, 'Sides', 'Crispy golden fries with seasoning'),
				('Onion Rings', 5.99, 'Sides', 'Crispy battered onion rings'),
				('Coca Cola', 2.99, 'Drinks', 'Chilled soft drink'),
				('Orange Juice', 3.99, 'Drinks', 'Fresh squeezed orange juice'),
				('Caesar Salad', 7.99, 'Salads', 'Fresh romaine lettuce with Caesar dressing'),
				('Chicken Wings', 11.99, 'Appetizers', 'Spicy chicken wings with ranch dip')`,
			`INSERT INTO restaurant_tables (category, price, capacity)
				SELECT t.category, t.price, t.capacity FROM (
					SELECT 'Standard' AS category, 2.00 AS price, 4 AS capacity UNION ALL
					SELECT 'Standard', 2.00, 4 UNION ALL
					SELECT 'Standard', 2.00, 4 UNION ALL
					SELECT 'Standard', 2.00, 4 UNION ALL
					SELECT 'Premium', 5.00, 6 UNION ALL
					SELECT 'Premium', 5.00, 6 UNION ALL
					SELECT 'Premium', 5.00, 6 UNION ALL
					SELECT 'Premium', 5.00, 6 UNION ALL
					SELECT 'VIP', 10.00, 8 UNION ALL
					SELECT 'VIP', 10.00, 8 UNION ALL
					SELECT 'Standard', 2.00, 4 UNION ALL
					SELECT 'Standard', 2.00, 4 UNION ALL
					SELECT 'Standard', 2.00, 4 UNION ALL
					SELECT 'Standard', 2.00, 4 UNION ALL
					SELECT 'Premium', 5.00, 6 UNION ALL
					SELECT 'Premium', 5.00, 6 UNION ALL
					SELECT 'Standard', 2.00, 2 UNION ALL
					SELECT 'Standard', 2.00, 2 UNION ALL
					SELECT 'VIP', 10.00, 10 UNION ALL
					SELECT 'VIP', 10.00, 10
				) t`,
		},
	},
}

// Migrate applies every pending migration in order. Application is
// idempotent: each migration is checked against schema_migrations
// before it runs, and recorded after it succeeds.
func Migrate(ctx context.Context, db *sql.DB) error {
	const track = `CREATE TABLE IF NOT EXISTS schema_migrations (
		name VARCHAR(255) NOT NULL PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.ExecContext(ctx, track); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Name] {
			continue
		}
		if err := runMigration(ctx, db, m); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		log.Printf("applied migration %s", m.Name)
	}
	return nil
}

// appliedMigrations returns the set of migration names already recorded.
func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// runMigration executes one migration's statements and records it.
// MySQL DDL auto-commits, so statements run on the plain connection
// and the record insert happens last; a crash mid-migration leaves
// the step unrecorded and it re-runs on next start (statements are
// written to tolerate that where MySQL allows).
func runMigration(ctx context.Context, db *sql.DB, m Migration) error {
	for _, stmt := range m.SQL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES (?)`, m.Name)
	return err
}
