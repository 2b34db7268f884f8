package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the sqlite-backed document store. Scalar fields live in columns;
// nested documents (fee tables, booking rules, room catalogs) are stored
// as JSON text, which also keeps legacy-shaped fee entries readable.
type DB struct {
	db *sql.DB
}

func NewDB(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            full_name TEXT NOT NULL,
            phone TEXT,
            role TEXT NOT NULL DEFAULT 'employee',
            company_id TEXT,
            department TEXT,
            password_hash TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS companies (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            tax_number TEXT,
            address TEXT,
            phone TEXT,
            email TEXT,
            service_fees TEXT NOT NULL DEFAULT '{}',
            booking_rules TEXT NOT NULL DEFAULT '{}',
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS hotels (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            city TEXT NOT NULL,
            district TEXT,
            address TEXT,
            stars INTEGER NOT NULL DEFAULT 1,
            description TEXT,
            amenities TEXT NOT NULL DEFAULT '[]',
            room_types TEXT NOT NULL DEFAULT '[]',
            images TEXT NOT NULL DEFAULT '[]',
            tripadvisor_rating TEXT,
            phone TEXT,
            email TEXT,
            cancellation_policy TEXT,
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS reservations (
            id TEXT PRIMARY KEY,
            service_type TEXT NOT NULL DEFAULT 'hotel',
            user_id TEXT NOT NULL,
            company_id TEXT,
            hotel_id TEXT NOT NULL,
            hotel_name TEXT NOT NULL,
            room_type_id TEXT NOT NULL,
            room_type_name TEXT NOT NULL,
            check_in_date TEXT NOT NULL,
            check_out_date TEXT NOT NULL,
            guests INTEGER NOT NULL DEFAULT 1,
            special_requests TEXT,
            nights INTEGER NOT NULL,
            price_per_night TEXT NOT NULL,
            total_price TEXT NOT NULL,
            service_fee TEXT NOT NULL,
            grand_total TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            requires_approval BOOLEAN NOT NULL DEFAULT 0,
            approved_by TEXT,
            approved_at DATETIME,
            rejection_reason TEXT,
            cancelled_at DATETIME,
            cancellation_reason TEXT,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_user_id ON reservations(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_company_id ON reservations(company_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status)`,
		`CREATE INDEX IF NOT EXISTS idx_users_company_id ON users(company_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}
