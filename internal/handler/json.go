package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MikhailRaia/shorturls/internal/pool"
	"github.com/rs/zerolog/log"
)

// ShortenRequest is the body of POST /api/shorten.
type ShortenRequest struct {
	LongURL   string `json:"long_url"`
	Customize string `json:"customize"`
}

var bufferPool = pool.New(64, func() *bytes.Buffer { return new(bytes.Buffer) })

// handleShortenJSON is the JSON twin of the form endpoint.
func (h *Handler) handleShortenJSON(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.shorten(w, r, request.LongURL, request.Customize)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	buf := bufferPool.Get()
	defer bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}
