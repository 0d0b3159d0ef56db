package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// compressibleTypes are the response content types worth compressing.
// PNG images are already compressed.
var compressibleTypes = []string{
	"application/json",
	"text/html",
	"text/plain",
}

// Compress gzips eligible responses when the client accepts it.
func Compress() func(http.Handler) http.Handler {
	return chimiddleware.Compress(gzip.BestSpeed, compressibleTypes...)
}

// GzipReader transparently decompresses gzipped request bodies, including
// form posts.
func GzipReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			log.Debug().Err(err).Msg("Rejecting malformed gzip body")
			http.Error(w, "Failed to read gzipped request", http.StatusBadRequest)
			return
		}
		defer gzReader.Close()

		r.Body = gzReader
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}
