// Package db provides PostgreSQL access for the stored profile and application documents.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL creates the document table. Each stored document is one row keyed by name,
// holding the same JSON text the file backend writes to disk.
const schemaSQL = `CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the documents table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

// GetDocument returns the stored body for name, or nil if there is no such document
func (db *DB) GetDocument(ctx context.Context, name string) ([]byte, error) {
	var body string
	err := db.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE name = $1`,
		name,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", name, err)
	}
	return []byte(body), nil
}

// PutDocument stores body under name, replacing any previous version
func (db *DB) PutDocument(ctx context.Context, name string, body []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO documents (name, body)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET body = $2, updated_at = NOW()`,
		name, string(body),
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", name, err)
	}
	return nil
}

// DeleteDocument removes the document with the given name, if present
func (db *DB) DeleteDocument(ctx context.Context, name string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE name = $1`, name); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", name, err)
	}
	return nil
}
