package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/service"
	"github.com/MikhailRaia/shorturls/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	store := memory.NewStorage()
	allocator := service.NewAllocator(store, 5, 10)
	svc := service.NewURLService(store, allocator, "http://localhost:8080")
	return NewHandler(svc, nil).RegisterRoutes()
}

func decodeShorten(t *testing.T, w *httptest.ResponseRecorder) model.ShortenResponse {
	t.Helper()

	var resp model.ShortenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRouter_ShortenAndRedirect(t *testing.T) {
	router := newTestRouter()

	w := postForm(t, router, "https://example.com", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeShorten(t, w)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{5}$`), resp.ShortenedURL)
	assert.Equal(t, "http://localhost:8080/", resp.Link)

	req := httptest.NewRequest(http.MethodGet, "/"+resp.ShortenedURL, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Location"))
}

func TestRouter_CustomCodeConflicts(t *testing.T) {
	router := newTestRouter()

	w := postForm(t, router, "https://a.com", "abc12")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc12", decodeShorten(t, w).ShortenedURL)

	w = postForm(t, router, "https://b.com", "abc12")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Short code already exists", w.Body.String())

	w = postForm(t, router, "https://a.com", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "URL Already Exist", w.Body.String())

	w = postForm(t, router, "https://a.com", "abc12")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "URL Already Exist", w.Body.String())
}

func TestRouter_ListDeleteLifecycle(t *testing.T) {
	router := newTestRouter()

	require.Equal(t, http.StatusOK, postForm(t, router, "https://a.com", "aaaaa").Code)
	require.Equal(t, http.StatusOK, postForm(t, router, "https://b.com", "bbbbb").Code)

	req := httptest.NewRequest(http.MethodGet, "/list-urls", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var list model.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.URLs, 2)
	assert.Equal(t, "aaaaa", list.URLs[0].ShortenedURL)
	assert.Equal(t, "https://b.com", list.URLs[1].LongURL)

	req = httptest.NewRequest(http.MethodDelete, "/delete/999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/delete/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/aaaaa", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/test-url/bbbbb", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "Success", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/generate-qr/bbbbb", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("\x89PNG"), w.Body.Bytes()[:4])
}

func TestRouter_CustomCodeShadowedByFixedRoute(t *testing.T) {
	router := newTestRouter()

	w := postForm(t, router, "https://a.com", "list-urls")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "list-urls", decodeShorten(t, w).ShortenedURL)

	req := httptest.NewRequest(http.MethodGet, "/test-url/list-urls", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "Success", w.Body.String())

	// the fixed route wins over the stored code
	req = httptest.NewRequest(http.MethodGet, "/list-urls", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	var list model.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.URLs, 1)
	assert.Equal(t, "list-urls", list.URLs[0].ShortenedURL)
}
