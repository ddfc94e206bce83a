// Package server serves an interactive choropleth of the persisted dataset.
package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pfrederiksen/voter-density/internal/choropleth"
	"github.com/pfrederiksen/voter-density/internal/logger"
	"github.com/pfrederiksen/voter-density/internal/record"
)

//go:embed index.html
var indexHTML []byte

// DatasetSource returns the current dataset. It is called on every map request so a
// fresh scrape shows up without a restart.
type DatasetSource func() (*record.Table, error)

// Handler wires the map endpoints to a dataset and county boundaries.
type Handler struct {
	boundaries *choropleth.FeatureCollection
	dataset    DatasetSource
	log        *logger.Logger
}

// New constructs a map handler.
func New(boundaries *choropleth.FeatureCollection, dataset DatasetSource) *Handler {
	return &Handler{
		boundaries: boundaries,
		dataset:    dataset,
		log:        logger.Named("server"),
	}
}

// Router returns a chi router with every endpoint mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLog)
	h.Register(r)
	return r
}

// Register mounts the map endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleIndex)
	r.Get("/healthz", h.HandleHealth)
	r.Get("/api/weeks", h.HandleWeeks)
	r.Get("/api/map", h.HandleMap)
}

// HandleIndex serves the map page. The page requests /api/map once on load.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleWeeks lists the weeks present in the dataset.
func (h *Handler) HandleWeeks(w http.ResponseWriter, r *http.Request) {
	dataset, err := h.dataset()
	if err != nil {
		h.fail(w, r, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"weeks": choropleth.Weeks(dataset)})
}

// HandleMap returns the shaded GeoJSON for ?metric=&week=&percent=.
func (h *Handler) HandleMap(w http.ResponseWriter, r *http.Request) {
	dataset, err := h.dataset()
	if err != nil {
		h.fail(w, r, http.StatusServiceUnavailable, err)
		return
	}

	query := r.URL.Query()
	opts := choropleth.Options{
		Metric: query.Get("metric"),
		Week:   query.Get("week"),
	}
	if p := query.Get("percent"); p != "" {
		opts.Percent, err = strconv.ParseBool(p)
		if err != nil {
			h.fail(w, r, http.StatusBadRequest, err)
			return
		}
	}

	m, err := choropleth.Build(h.boundaries, dataset, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, choropleth.ErrUnknownMetric) || errors.Is(err, choropleth.ErrUnknownWeek) {
			status = http.StatusNotFound
		}
		h.fail(w, r, status, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(m); err != nil {
		h.log.Error("encoding map", logger.Fields{"request_id": middleware.GetReqID(r.Context())}, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.log.Warn("request failed", logger.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"path":       r.URL.Path,
		"status":     status,
		"error":      err.Error(),
	})
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Debug("request", logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
