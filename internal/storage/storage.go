package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikhailRaia/shorturls/internal/model"
)

var (
	// ErrNotFound is returned when no mapping matches the lookup.
	ErrNotFound = errors.New("mapping not found")

	// ErrConstraintViolation is the parent of all uniqueness failures.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrShortURLExists means another row already uses the short code.
	ErrShortURLExists = fmt.Errorf("%w: short_url already exists", ErrConstraintViolation)

	// ErrLongURLExists means another row already maps the long URL.
	ErrLongURLExists = fmt.Errorf("%w: long_url already exists", ErrConstraintViolation)
)

// MappingStore is a durable table of short code to long URL mappings.
// Both columns are unique.
type MappingStore interface {
	Create(ctx context.Context, shortURL, longURL string) (int64, error)
	GetByShortURL(ctx context.Context, shortURL string) (model.URLMapping, error)
	GetByLongURL(ctx context.Context, longURL string) (model.URLMapping, error)
	DeleteByID(ctx context.Context, id int64) error
	// List returns all mappings ordered by id.
	List(ctx context.Context) ([]model.URLMapping, error)
	Ping(ctx context.Context) error
	Close() error
}
