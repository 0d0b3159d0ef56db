package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/storage"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS urls (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	short_url TEXT    NOT NULL UNIQUE,
	long_url  TEXT    NOT NULL UNIQUE
);
`

// Storage implements storage.MappingStore on top of a SQLite database file.
type Storage struct {
	db *sql.DB
}

// NewStorage opens (or creates) the database at path and applies the schema.
func NewStorage(ctx context.Context, path string) (*Storage, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}
	// a single writer keeps SQLITE_BUSY out of the request path
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error pinging sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error applying schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Create stores a new mapping and returns its id.
func (s *Storage) Create(ctx context.Context, shortURL, longURL string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO urls (short_url, long_url) VALUES (?, ?)",
		shortURL, longURL,
	)
	if err != nil {
		return 0, translateError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading inserted id: %w", err)
	}

	return id, nil
}

// GetByShortURL retrieves the mapping for a given short code.
func (s *Storage) GetByShortURL(ctx context.Context, shortURL string) (model.URLMapping, error) {
	return s.getOne(ctx, "SELECT id, short_url, long_url FROM urls WHERE short_url = ?", shortURL)
}

// GetByLongURL retrieves the mapping for a given long URL.
func (s *Storage) GetByLongURL(ctx context.Context, longURL string) (model.URLMapping, error) {
	return s.getOne(ctx, "SELECT id, short_url, long_url FROM urls WHERE long_url = ?", longURL)
}

func (s *Storage) getOne(ctx context.Context, query, arg string) (model.URLMapping, error) {
	var m model.URLMapping
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&m.ID, &m.ShortURL, &m.LongURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.URLMapping{}, storage.ErrNotFound
		}
		return model.URLMapping{}, fmt.Errorf("error querying database: %w", err)
	}

	return m, nil
}

// DeleteByID removes a mapping.
func (s *Storage) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM urls WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("error deleting URL: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}

	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// List returns all mappings ordered by id.
func (s *Storage) List(ctx context.Context) ([]model.URLMapping, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, short_url, long_url FROM urls ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("error listing URLs: %w", err)
	}
	defer rows.Close()

	result := make([]model.URLMapping, 0)
	for rows.Next() {
		var m model.URLMapping
		if err := rows.Scan(&m.ID, &m.ShortURL, &m.LongURL); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// Ping checks that the store is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying resources.
func (s *Storage) Close() error {
	return s.db.Close()
}

func translateError(err error) error {
	var sqliteErr *sqlite.Error
	// primary code check covers drivers built without extended result codes
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "urls.short_url"):
			return storage.ErrShortURLExists
		case strings.Contains(msg, "urls.long_url"):
			return storage.ErrLongURLExists
		}
		if sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return fmt.Errorf("%w: %s", storage.ErrConstraintViolation, msg)
		}
	}

	return fmt.Errorf("error inserting URL into database: %w", err)
}
