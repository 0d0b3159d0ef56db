package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/storage"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	shortURLConstraint = "urls_short_url_key"
	longURLConstraint  = "urls_long_url_key"
)

// Storage implements storage.MappingStore on PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage connects to dsn and creates the urls table if it is missing.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	if dsn == "" {
		return nil, errors.New("database connection string is empty")
	}

	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	s := &Storage{
		pool: pool,
	}

	if err := s.createTable(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error creating table: %w", err)
	}

	return s, nil
}

func (s *Storage) createTable(ctx context.Context) error {
	createTableQuery := `
		CREATE TABLE IF NOT EXISTS urls (
			id BIGSERIAL PRIMARY KEY,
			short_url VARCHAR(64) NOT NULL,
			long_url TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CONSTRAINT ` + shortURLConstraint + ` UNIQUE (short_url),
			CONSTRAINT ` + longURLConstraint + ` UNIQUE (long_url)
		);
	`

	_, err := s.pool.Exec(ctx, createTableQuery)
	return err
}

// Create stores a new mapping and returns its id.
func (s *Storage) Create(ctx context.Context, shortURL, longURL string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		"INSERT INTO urls (short_url, long_url) VALUES ($1, $2) RETURNING id",
		shortURL, longURL,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case shortURLConstraint:
				return 0, storage.ErrShortURLExists
			case longURLConstraint:
				return 0, storage.ErrLongURLExists
			}
			return 0, fmt.Errorf("%w: %s", storage.ErrConstraintViolation, pgErr.ConstraintName)
		}
		return 0, fmt.Errorf("error inserting URL into database: %w", err)
	}

	return id, nil
}

// GetByShortURL retrieves the mapping for a given short code.
func (s *Storage) GetByShortURL(ctx context.Context, shortURL string) (model.URLMapping, error) {
	return s.getOne(ctx, "SELECT id, short_url, long_url FROM urls WHERE short_url = $1", shortURL)
}

// GetByLongURL retrieves the mapping for a given long URL.
func (s *Storage) GetByLongURL(ctx context.Context, longURL string) (model.URLMapping, error) {
	return s.getOne(ctx, "SELECT id, short_url, long_url FROM urls WHERE long_url = $1", longURL)
}

func (s *Storage) getOne(ctx context.Context, query string, arg string) (model.URLMapping, error) {
	var m model.URLMapping
	err := s.pool.QueryRow(ctx, query, arg).Scan(&m.ID, &m.ShortURL, &m.LongURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.URLMapping{}, storage.ErrNotFound
		}
		return model.URLMapping{}, fmt.Errorf("error querying database: %w", err)
	}

	return m, nil
}

// DeleteByID removes a mapping.
func (s *Storage) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM urls WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting URL: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// List returns all mappings ordered by id.
func (s *Storage) List(ctx context.Context) ([]model.URLMapping, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, short_url, long_url FROM urls ORDER BY id")
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
	return s.pool.Ping(ctx)
}

// Close releases the underlying resources.
func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
