package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/MikhailRaia/shorturls/internal/storage"
)

func TestStorage_Create(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	id, err := s.Create(ctx, "abc12", "https://example.com")
	if err != nil {
		t.Fatalf("Storage.Create() error = %v", err)
	}

	if id != 1 {
		t.Errorf("Storage.Create() id = %v, want 1", id)
	}

	got, err := s.GetByShortURL(ctx, "abc12")
	if err != nil {
		t.Fatalf("Storage.GetByShortURL() error = %v", err)
	}

	if got.LongURL != "https://example.com" {
		t.Errorf("Storage.GetByShortURL() = %v, want %v", got.LongURL, "https://example.com")
	}
}

func TestStorage_CreateConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	if _, err := s.Create(ctx, "abc12", "https://a.com"); err != nil {
		t.Fatalf("Storage.Create() error = %v", err)
	}

	tests := []struct {
		name     string
		shortURL string
		longURL  string
		wantErr  error
	}{
		{
			name:     "Duplicate short code",
			shortURL: "abc12",
			longURL:  "https://b.com",
			wantErr:  storage.ErrShortURLExists,
		},
		{
			name:     "Duplicate long URL",
			shortURL: "xyz99",
			longURL:  "https://a.com",
			wantErr:  storage.ErrLongURLExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, tt.shortURL, tt.longURL)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Storage.Create() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, storage.ErrConstraintViolation) {
				t.Errorf("Storage.Create() error = %v is not a constraint violation", err)
			}
		})
	}
}

func TestStorage_Lookups(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	id, _ := s.Create(ctx, "abc12", "https://example.com")

	tests := []struct {
		name      string
		lookup    func() (int64, error)
		wantID    int64
		wantFound bool
	}{
		{
			name: "By existing short code",
			lookup: func() (int64, error) {
				m, err := s.GetByShortURL(ctx, "abc12")
				return m.ID, err
			},
			wantID:    id,
			wantFound: true,
		},
		{
			name: "By missing short code",
			lookup: func() (int64, error) {
				m, err := s.GetByShortURL(ctx, "nope")
				return m.ID, err
			},
			wantFound: false,
		},
		{
			name: "By existing long URL",
			lookup: func() (int64, error) {
				m, err := s.GetByLongURL(ctx, "https://example.com")
				return m.ID, err
			},
			wantID:    id,
			wantFound: true,
		},
		{
			name: "By missing long URL",
			lookup: func() (int64, error) {
				m, err := s.GetByLongURL(ctx, "https://other.com")
				return m.ID, err
			},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, err := tt.lookup()
			if tt.wantFound {
				if err != nil {
					t.Fatalf("lookup error = %v", err)
				}
				if gotID != tt.wantID {
					t.Errorf("lookup id = %v, want %v", gotID, tt.wantID)
				}
				return
			}
			if !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("lookup error = %v, want %v", err, storage.ErrNotFound)
			}
		})
	}
}

func TestStorage_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	first, _ := s.Create(ctx, "aaaaa", "https://a.com")
	second, _ := s.Create(ctx, "bbbbb", "https://b.com")
	third, _ := s.Create(ctx, "ccccc", "https://c.com")

	if err := s.DeleteByID(ctx, second); err != nil {
		t.Fatalf("Storage.DeleteByID() error = %v", err)
	}

	if err := s.DeleteByID(ctx, second); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Storage.DeleteByID() second call error = %v, want %v", err, storage.ErrNotFound)
	}

	if _, err := s.GetByShortURL(ctx, "bbbbb"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Storage.GetByShortURL() after delete error = %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("Storage.List() error = %v", err)
	}

	if len(list) != 2 || list[0].ID != first || list[1].ID != third {
		t.Errorf("Storage.List() = %+v, want ids %d and %d", list, first, third)
	}

	// freed values can be reused
	if _, err := s.Create(ctx, "bbbbb", "https://b.com"); err != nil {
		t.Errorf("Storage.Create() after delete error = %v", err)
	}
}
