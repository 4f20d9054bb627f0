package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"covid-dashboard/internal/service"
	"covid-dashboard/internal/view"

	"github.com/rs/zerolog"
)

// HTTPServer serves what does not fit a JSON RPC: images, downloads and
// probes.
type HTTPServer struct {
	dash    *service.Dashboard
	exports *service.ExportService
	journal *service.JournalService
}

func NewHTTPServer(dash *service.Dashboard, exports *service.ExportService, journal *service.JournalService) *HTTPServer {
	return &HTTPServer{dash: dash, exports: exports, journal: journal}
}

func (h *HTTPServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /charts/{view}", h.chart)
	mux.HandleFunc("GET /export.csv", h.export(service.ExportCSV))
	mux.HandleFunc("GET /export.xlsx", h.export(service.ExportXLSX))
	mux.HandleFunc("GET /journal", h.recentJournal)
	mux.HandleFunc("GET /healthz", h.health)
}

func (h *HTTPServer) chart(w http.ResponseWriter, r *http.Request) {
	kind := view.Kind(r.PathValue("view"))
	if !kind.Known() {
		http.Error(w, fmt.Sprintf("unknown view %q", kind), http.StatusNotFound)
		return
	}
	format, err := view.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.dash.RenderChart(kind, format)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if v.Image == nil {
		http.Error(w, v.Error, http.StatusInternalServerError)
		return
	}
	if v.Failed() {
		w.Header().Set("X-Render-Error", v.Error)
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(v.Image)
}

func (h *HTTPServer) export(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := h.exports.Prepare(format)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", e.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, e.FileName))
		if err := h.exports.Write(r.Context(), w, e); err != nil {
			// headers are gone; the client sees a truncated body
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("export aborted mid-stream")
		}
	}
}

func (h *HTTPServer) recentJournal(w http.ResponseWriter, r *http.Request) {
	j, err := h.journal.Recent(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (h *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	if !h.dash.Loaded() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotLoaded):
		status = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrUnknownExportFormat):
		status = http.StatusBadRequest
	}
	zerolog.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("request failed")
	http.Error(w, err.Error(), status)
}
