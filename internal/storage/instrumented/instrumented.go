package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// QueryNameLabel is the storage operation ("Create", "GetByShortURL", ...).
	QueryNameLabel = "query_name"
	// StatusLabel is the outcome of the operation.
	StatusLabel = "status"

	StatusSuccess  = "success"
	StatusError    = "error"
	StatusNotFound = "not_found"
	StatusConflict = "conflict"
)

// Metrics contains the Prometheus collectors for storage operations.
type Metrics struct {
	QueryDuration *prometheus.HistogramVec
	QueryTotal    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storage_query_duration_seconds",
			Help:    "Duration of storage operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{QueryNameLabel}),
		QueryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storage_query_total",
			Help: "Number of storage operations by outcome.",
		}, []string{QueryNameLabel, StatusLabel}),
	}

	for _, c := range []prometheus.Collector{m.QueryDuration, m.QueryTotal} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, err
		}
	}

	return m, nil
}

// Store decorates a storage.MappingStore with query metrics.
type Store struct {
	next    storage.MappingStore
	metrics Metrics
}

var _ storage.MappingStore = (*Store)(nil)

// NewStore wraps next so every call is timed and counted.
func NewStore(next storage.MappingStore, metrics Metrics) *Store {
	return &Store{next: next, metrics: metrics}
}

func (s *Store) observe(queryName string, start time.Time, err error) {
	s.metrics.QueryDuration.WithLabelValues(queryName).Observe(time.Since(start).Seconds())
	s.metrics.QueryTotal.WithLabelValues(queryName, statusOf(err)).Inc()
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, storage.ErrNotFound):
		return StatusNotFound
	case errors.Is(err, storage.ErrConstraintViolation):
		return StatusConflict
	default:
		return StatusError
	}
}

// Create stores a new mapping and returns its id.
func (s *Store) Create(ctx context.Context, shortURL, longURL string) (int64, error) {
	start := time.Now()
	id, err := s.next.Create(ctx, shortURL, longURL)
	s.observe("Create", start, err)
	return id, err
}

// GetByShortURL retrieves the mapping for a given short code.
func (s *Store) GetByShortURL(ctx context.Context, shortURL string) (model.URLMapping, error) {
	start := time.Now()
	m, err := s.next.GetByShortURL(ctx, shortURL)
	s.observe("GetByShortURL", start, err)
	return m, err
}

// GetByLongURL retrieves the mapping for a given long URL.
func (s *Store) GetByLongURL(ctx context.Context, longURL string) (model.URLMapping, error) {
	start := time.Now()
	m, err := s.next.GetByLongURL(ctx, longURL)
	s.observe("GetByLongURL", start, err)
	return m, err
}

// DeleteByID removes a mapping.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.next.DeleteByID(ctx, id)
	s.observe("DeleteByID", start, err)
	return err
}

// List returns all mappings ordered by id.
func (s *Store) List(ctx context.Context) ([]model.URLMapping, error) {
	start := time.Now()
	list, err := s.next.List(ctx)
	s.observe("List", start, err)
	return list, err
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close releases the underlying resources.
func (s *Store) Close() error {
	return s.next.Close()
}
