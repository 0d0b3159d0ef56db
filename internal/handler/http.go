package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MikhailRaia/shorturls/internal/logger"
	"github.com/MikhailRaia/shorturls/internal/middleware"
	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/service"
	"github.com/MikhailRaia/shorturls/internal/storage"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	msgURLExists  = "URL Already Exist"
	msgCodeExists = "Short code already exists"
	msgNotFound   = "URL not found"
)

// URLService is the business logic the HTTP and gRPC handlers call.
type URLService interface {
	Shorten(ctx context.Context, longURL, custom string) (model.URLMapping, error)
	Resolve(ctx context.Context, code string) (string, error)
	Exists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]model.URLMapping, error)
	Delete(ctx context.Context, id int64) error
	QRCode(ctx context.Context, code string) ([]byte, error)
	ShortURL(code string) string
	Link() string
	Ping(ctx context.Context) error
}

// Handler serves the HTTP API.
type Handler struct {
	urlService URLService
	metrics    http.Handler
}

// NewHandler builds the HTTP handler. metrics may be nil to leave /metrics unrouted.
func NewHandler(urlService URLService, metrics http.Handler) *Handler {
	return &Handler{
		urlService: urlService,
		metrics:    metrics,
	}
}

// RegisterRoutes builds the chi router with the middleware chain and all routes.
func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)

	r.Use(middleware.GzipReader)
	r.Use(middleware.Compress())

	r.Get("/", h.handleIndex)
	r.Post("/", h.handleShorten)
	r.Post("/api/shorten", h.handleShortenJSON)
	r.Get("/list-urls", h.handleList)
	r.Delete("/delete/{id}", h.handleDelete)
	r.Get("/generate-qr/{code}", h.handleQRCode)
	r.Get("/test-url/{code}", h.handleTestURL)
	r.Get("/ping", h.handlePing)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}
	r.Get("/{code}", h.handleRedirect)

	return r
}

func (h *Handler) handleShorten(w http.ResponseWriter, r *http.Request) {
	longURL := r.PostFormValue("long_url")
	custom := r.PostFormValue("customize")

	h.shorten(w, r, longURL, custom)
}

// shorten reports conflicts as 200 with a plain-text body; only a created mapping is JSON.
func (h *Handler) shorten(w http.ResponseWriter, r *http.Request, longURL, custom string) {
	m, err := h.urlService.Shorten(r.Context(), longURL, custom)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyURL):
			writeText(w, http.StatusBadRequest, "long_url is required")
		case errors.Is(err, service.ErrURLExists):
			writeText(w, http.StatusOK, msgURLExists)
		case errors.Is(err, service.ErrDuplicateCode):
			writeText(w, http.StatusOK, msgCodeExists)
		case errors.Is(err, service.ErrAllocationExhausted):
			log.Warn().Err(err).Msg("Short code space exhausted")
			writeText(w, http.StatusServiceUnavailable, "Could not allocate a short code, try again")
		default:
			log.Error().Err(err).Msg("Failed to shorten URL")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.ShortenResponse{
		ShortenedURL: m.ShortURL,
		Link:         h.urlService.Link(),
	})
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	longURL, err := h.urlService.Resolve(r.Context(), code)
	if err != nil {
		h.notFoundOrError(w, err, "Failed to resolve short URL")
		return
	}

	http.Redirect(w, r, longURL, http.StatusFound)
}

func (h *Handler) handleTestURL(w http.ResponseWriter, r *http.Request) {
	ok, err := h.urlService.Exists(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to check short URL")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if ok {
		writeText(w, http.StatusOK, "Success")
		return
	}
	writeText(w, http.StatusOK, "Failure")
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	urls, err := h.urlService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list URLs")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp := model.ListResponse{URLs: make([]model.ListItem, 0, len(urls))}
	for _, u := range urls {
		resp.URLs = append(resp.URLs, model.ListItem{
			ID:           u.ID,
			ShortenedURL: u.ShortURL,
			LongURL:      u.LongURL,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeText(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.urlService.Delete(r.Context(), id); err != nil {
		h.notFoundOrError(w, err, "Failed to delete URL")
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResponse{Success: true})
}

func (h *Handler) handleQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.urlService.QRCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.notFoundOrError(w, err, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	if err := h.urlService.Ping(r.Context()); err != nil {
		log.Error().Err(err).Msg("Storage ping failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) notFoundOrError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeText(w, http.StatusNotFound, msgNotFound)
		return
	}

	log.Error().Err(err).Msg(msg)
	w.WriteHeader(http.StatusInternalServerError)
}
