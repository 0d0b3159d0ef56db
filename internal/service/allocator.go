package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikhailRaia/shorturls/internal/generator"
	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/storage"
	"github.com/rs/zerolog/log"
)

// DefaultMaxAttempts bounds the number of random draws per allocation.
const DefaultMaxAttempts = 10

// CodeLookup is the read-only view of the store the allocator needs.
type CodeLookup interface {
	GetByShortURL(ctx context.Context, shortURL string) (model.URLMapping, error)
}

// Allocator hands out short codes that are unused at the moment of return.
type Allocator struct {
	lookup      CodeLookup
	length      int
	maxAttempts int
	generate    func(length int) (string, error)
}

// NewAllocator creates an Allocator. Non-positive length or maxAttempts fall
// back to the defaults.
func NewAllocator(lookup CodeLookup, length, maxAttempts int) *Allocator {
	if length <= 0 {
		length = generator.DefaultLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Allocator{
		lookup:      lookup,
		length:      length,
		maxAttempts: maxAttempts,
		generate:    generator.Generate,
	}
}

// Allocate returns custom if it is free, or a freshly drawn random code when
// custom is empty.
func (a *Allocator) Allocate(ctx context.Context, custom string) (string, error) {
	code, _, err := a.allocate(ctx, custom, a.maxAttempts)
	return code, err
}

// allocate draws at most budget random codes and reports how many it used.
// A custom code costs one attempt.
func (a *Allocator) allocate(ctx context.Context, custom string, budget int) (string, int, error) {
	if custom != "" {
		taken, err := a.taken(ctx, custom)
		if err != nil {
			return "", 1, err
		}
		if taken {
			return "", 1, ErrDuplicateCode
		}
		return custom, 1, nil
	}

	for attempt := 1; attempt <= budget; attempt++ {
		code, err := a.generate(a.length)
		if err != nil {
			return "", attempt, fmt.Errorf("allocate: %w", err)
		}

		taken, err := a.taken(ctx, code)
		if err != nil {
			return "", attempt, err
		}
		if !taken {
			return code, attempt, nil
		}

		log.Debug().Str("code", code).Int("attempt", attempt).Msg("Short code collision")
	}

	return "", budget, ErrAllocationExhausted
}

func (a *Allocator) taken(ctx context.Context, code string) (bool, error) {
	_, err := a.lookup.GetByShortURL(ctx, code)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("allocate: checking code: %w", err)
	}
}
