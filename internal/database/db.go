package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the application tables when they do not exist yet, so
// a fresh database is usable without a separate migration step.
//
// passengers has no unique key on (name, flight_number): check-in reuses an
// existing row when one matches but concurrent check-ins may create
// duplicates, which the lookup tolerates.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'staff',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_refresh_tokens_hash (token_hash),
			CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS passengers (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			flight_number VARCHAR(50) NOT NULL,
			KEY idx_passengers_name_flight (name, flight_number)
		)`,
		`CREATE TABLE IF NOT EXISTS lounge_entries (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			passenger_id BIGINT UNSIGNED NOT NULL,
			entry_time DATETIME NOT NULL,
			exit_time DATETIME NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'active',
			KEY idx_lounge_entries_entry_time (entry_time),
			KEY idx_lounge_entries_status (status),
			CONSTRAINT fk_lounge_entries_passenger FOREIGN KEY (passenger_id) REFERENCES passengers(id)
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			passenger_name VARCHAR(100) NOT NULL,
			flight_number VARCHAR(50) NOT NULL,
			reservation_date DATE NOT NULL,
			reservation_time TIME NOT NULL,
			number_of_guests INT NOT NULL DEFAULT 1,
			status VARCHAR(50) NOT NULL DEFAULT 'confirmed',
			KEY idx_reservations_date (reservation_date)
		)`,
		`CREATE TABLE IF NOT EXISTS lounge_settings (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			lounge_name VARCHAR(100) NOT NULL DEFAULT 'Prima Vista Lounge',
			lounge_address VARCHAR(200) NOT NULL DEFAULT '',
			lounge_capacity INT NOT NULL DEFAULT 0,
			entry_tracking_method VARCHAR(50) NOT NULL DEFAULT 'manual'
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
