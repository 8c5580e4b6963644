// Package store persists the job seeker's profile and the tracked job applications.
//
// Both are single JSON documents held by a Backend: a directory of files by default,
// or a PostgreSQL table. The stores recover from corrupted documents instead of failing.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-assistant/internal/db"
)

// Document names
const (
	ProfileDocument      = "user_profiles.json"
	ApplicationsDocument = "job_applications.json"
)

var (
	// ErrNotExist is returned by a Backend when the named document has never been saved.
	ErrNotExist = errors.New("document does not exist")
	// ErrIndexOutOfRange is returned when an application index does not address a stored record.
	ErrIndexOutOfRange = errors.New("application index out of range")
)

// Backend loads and saves whole named documents.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Close() error
}

// FileBackend stores each document as a file in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a FileBackend rooted at dir. The directory is created on first save.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Load reads the named document.
func (b *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	path, err := b.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Save writes the named document through a temp file and rename, so readers never see a partial file.
func (b *FileBackend) Save(_ context.Context, name string, data []byte) error {
	path, err := b.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Close is a no-op for files.
func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	return filepath.Join(b.dir, name), nil
}

// PostgresBackend stores documents in the documents table.
type PostgresBackend struct {
	db *db.DB
}

// NewPostgresBackend connects to databaseURL and makes sure the documents table exists.
func NewPostgresBackend(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	conn, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := conn.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return &PostgresBackend{db: conn}, nil
}

// Load reads the named document.
func (b *PostgresBackend) Load(ctx context.Context, name string) ([]byte, error) {
	body, err := b.db.GetDocument(ctx, name)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	return body, nil
}

// Save upserts the named document.
func (b *PostgresBackend) Save(ctx context.Context, name string, data []byte) error {
	return b.db.PutDocument(ctx, name, data)
}

// Close closes the connection pool.
func (b *PostgresBackend) Close() error {
	b.db.Close()
	return nil
}
