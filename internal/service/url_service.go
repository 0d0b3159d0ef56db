package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/qr"
	"github.com/MikhailRaia/shorturls/internal/storage"
	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyURL is returned when no long URL was submitted.
	ErrEmptyURL = errors.New("long url is empty")
	// ErrURLExists is returned when the long URL is already mapped.
	ErrURLExists = errors.New("url already exists")
	// ErrDuplicateCode is returned when a custom code is already taken.
	ErrDuplicateCode = errors.New("short code already exists")
	// ErrAllocationExhausted is returned when no free code was found within the attempt budget.
	ErrAllocationExhausted = errors.New("short code allocation exhausted")
)

// URLService provides business logic for creating and resolving short URLs.
type URLService struct {
	storage   storage.MappingStore
	allocator *Allocator
	baseURL   string
}

// NewURLService constructs a URLService with the given storage, allocator and base URL.
func NewURLService(store storage.MappingStore, allocator *Allocator, baseURL string) *URLService {
	return &URLService{
		storage:   store,
		allocator: allocator,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Shorten stores a new mapping for longURL using custom as the code when set.
// If longURL is already mapped the stored mapping is returned with ErrURLExists.
// Both inputs are stored exactly as given. Random draws at lookup and at insert
// share one budget of maxAttempts.
func (s *URLService) Shorten(ctx context.Context, longURL, custom string) (model.URLMapping, error) {
	if strings.TrimSpace(longURL) == "" {
		return model.URLMapping{}, ErrEmptyURL
	}

	existing, err := s.storage.GetByLongURL(ctx, longURL)
	if err == nil {
		return existing, ErrURLExists
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return model.URLMapping{}, fmt.Errorf("error looking up url: %w", err)
	}

	// a concurrent writer can take the code between allocate and Create
	remaining := s.allocator.maxAttempts
	for remaining > 0 {
		code, used, err := s.allocator.allocate(ctx, custom, remaining)
		remaining -= used
		if err != nil {
			return model.URLMapping{}, err
		}

		id, err := s.storage.Create(ctx, code, longURL)
		switch {
		case err == nil:
			log.Info().Int64("id", id).Str("code", code).Msg("Short URL created")
			return model.URLMapping{ID: id, ShortURL: code, LongURL: longURL}, nil
		case errors.Is(err, storage.ErrShortURLExists):
			if custom != "" {
				return model.URLMapping{}, ErrDuplicateCode
			}
			log.Debug().Str("code", code).Msg("Short code taken at insert, retrying")
		case errors.Is(err, storage.ErrLongURLExists):
			existing, lookupErr := s.storage.GetByLongURL(ctx, longURL)
			if lookupErr != nil {
				return model.URLMapping{}, ErrURLExists
			}
			return existing, ErrURLExists
		default:
			return model.URLMapping{}, fmt.Errorf("error saving url: %w", err)
		}
	}

	return model.URLMapping{}, ErrAllocationExhausted
}

// Resolve returns the long URL for code or storage.ErrNotFound.
func (s *URLService) Resolve(ctx context.Context, code string) (string, error) {
	m, err := s.storage.GetByShortURL(ctx, code)
	if err != nil {
		return "", err
	}
	return m.LongURL, nil
}

// Exists reports whether code is mapped.
func (s *URLService) Exists(ctx context.Context, code string) (bool, error) {
	_, err := s.storage.GetByShortURL(ctx, code)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// List returns all stored mappings.
func (s *URLService) List(ctx context.Context) ([]model.URLMapping, error) {
	urls, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing urls: %w", err)
	}
	return urls, nil
}

// Delete removes the mapping with the given id.
func (s *URLService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteByID(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("id", id).Msg("Short URL deleted")
	return nil
}

// QRCode renders a PNG QR code of the long URL behind code.
func (s *URLService) QRCode(ctx context.Context, code string) ([]byte, error) {
	longURL, err := s.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	return qr.Encode(longURL)
}

// ShortURL returns the absolute short link for code.
func (s *URLService) ShortURL(code string) string {
	shortURL, err := url.JoinPath(s.baseURL, code)
	if err != nil {
		return s.baseURL + "/" + code
	}
	return shortURL
}

// Link returns the service root URL with a trailing slash.
func (s *URLService) Link() string {
	return s.baseURL + "/"
}

// Ping checks the underlying storage.
func (s *URLService) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
