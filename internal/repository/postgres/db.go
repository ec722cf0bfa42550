// Package postgres implements the domain repositories on PostgreSQL using
// database/sql and lib/pq. Capacity-sensitive writes run inside
// transactions that lock the event row first, so concurrent registration
// and approval attempts on one event serialize at the store.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// Open connects to Postgres and verifies the connection. It retries the
// ping a few times to accommodate databases that are still starting up.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	for attempt := 1; attempt <= 5; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return db, nil
		}
		time.Sleep(2 * time.Second)
	}
	db.Close()
	return nil, fmt.Errorf("ping postgres: %w", err)
}

// Migrate applies the embedded schema. Every statement is IF NOT EXISTS,
// so running it on every boot is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Seed inserts the fixed reference data (venues, categories, tags) expected
// at first boot. Idempotent: existing rows are left alone.
func Seed(ctx context.Context, db *sql.DB) error {
	venues := []struct {
		name, address, city string
		capacity            int
	}{
		{"Tech Hub", "1 Innovation Blvd", "Sofia", 250},
		{"City Arena", "88 Main Street", "Plovdiv", 1500},
		{"Open Air Park", "Park Entrance", "Varna", 800},
	}
	for _, v := range venues {
		_, err := db.ExecContext(ctx, `
			INSERT INTO venues (name, address, city, capacity)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM venues WHERE name = $1 AND city = $3)
		`, v.name, v.address, v.city, v.capacity)
		if err != nil {
			return fmt.Errorf("seed venue %s: %w", v.name, err)
		}
	}

	for _, name := range []string{"Tech", "Music", "Sports", "Education"} {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}

	for _, name := range []string{".NET", "AI", "Concert", "Workshop"} {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed tag %s: %w", name, err)
		}
	}
	return nil
}

// Postgres error codes we map to domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isPQError(err error, code pq.ErrorCode) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == code
}
