package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/rs/zerolog/log"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type indexPage struct {
	Link string
	URLs []model.URLMapping
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	urls, err := h.urlService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list URLs")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	buf := bufferPool.Get()
	defer bufferPool.Put(buf)

	if err := indexTemplate.Execute(buf, indexPage{Link: h.urlService.Link(), URLs: urls}); err != nil {
		log.Error().Err(err).Msg("Failed to render index page")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
