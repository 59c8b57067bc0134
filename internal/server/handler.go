// Package server is the thin HTTP layer over the query service: request
// decoding, limit defaulting, cache consultation, and JSON rendering. All
// retrieval semantics live in internal/query.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jurisgo/lexsearch/internal/analytics"
	"github.com/jurisgo/lexsearch/internal/cache"
	"github.com/jurisgo/lexsearch/internal/query"
	apperrors "github.com/jurisgo/lexsearch/pkg/errors"
	"github.com/jurisgo/lexsearch/pkg/logger"
	"github.com/jurisgo/lexsearch/pkg/metrics"
	"github.com/jurisgo/lexsearch/pkg/middleware"
)

// Version is reported by the root and health endpoints.
const Version = "1.0.0"

// searchBody is the JSON body of POST /search.
type searchBody struct {
	Query          string `json:"query"`
	Limit          int    `json:"limit"`
	IncludeSources *bool  `json:"include_sources"`
}

// bookSearchBody is the JSON body of POST /search-by-book.
type bookSearchBody struct {
	Query      string `json:"query"`
	BookFilter string `json:"book_filter"`
	Limit      int    `json:"limit"`
}

type Handler struct {
	service      *query.Service
	cache        *cache.QueryCache
	collector    *analytics.Collector
	metrics      *metrics.Metrics
	defaultLimit int
	logger       *slog.Logger
}

// New builds a Handler. cache, collector, and m may be nil; service may be
// nil when the corpus failed to load, in which case every search endpoint
// answers 503.
func New(service *query.Service, queryCache *cache.QueryCache, collector *analytics.Collector, m *metrics.Metrics, defaultLimit int) *Handler {
	if defaultLimit < 1 {
		defaultLimit = 5
	}
	return &Handler{
		service:      service,
		cache:        queryCache,
		collector:    collector,
		metrics:      m,
		defaultLimit: defaultLimit,
		logger:       slog.Default().With("component", "search-handler"),
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var body searchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, ok := h.execute(w, r, query.SearchRequest{
		Query: body.Query,
		Limit: body.Limit,
	})
	if !ok {
		return
	}
	if body.IncludeSources != nil && !*body.IncludeSources {
		trimmed := *resp
		trimmed.Sources = []string{}
		resp = &trimmed
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SearchByBook(w http.ResponseWriter, r *http.Request) {
	var body bookSearchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.BookFilter == "" {
		h.writeError(w, http.StatusBadRequest, "book_filter is required")
		return
	}
	resp, ok := h.execute(w, r, query.SearchRequest{
		Query:      body.Query,
		Limit:      body.Limit,
		BookFilter: body.BookFilter,
	})
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// execute runs the validated-or-rejected search shared by both endpoints.
// On failure it writes the error response and returns ok=false.
func (h *Handler) execute(w http.ResponseWriter, r *http.Request, req query.SearchRequest) (*query.Response, bool) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if h.service == nil {
		h.observeQuery("error", "none", 0, start)
		h.writeError(w, http.StatusServiceUnavailable, "corpus is not available")
		return nil, false
	}
	if req.Limit == 0 {
		req.Limit = h.defaultLimit
	}

	var resp *query.Response
	var err error
	cacheHit := false

	if h.cache != nil {
		resp, cacheHit, err = h.cache.GetOrCompute(ctx, req, func() (*query.Response, error) {
			return h.service.Search(ctx, req)
		})
	} else {
		resp, err = h.service.Search(ctx, req)
	}

	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		if status >= 500 {
			log.Error("search execution failed", "query", req.Query, "error", err)
			h.observeQuery("error", "none", 0, start)
		} else {
			h.observeQuery("invalid", "none", 0, start)
		}
		h.writeError(w, status, errorMessage(err))
		return nil, false
	}

	latencyMs := time.Since(start).Milliseconds()
	log.Info("search completed",
		"query", req.Query,
		"returned", resp.TotalResults,
		"cache_hit", cacheHit,
		"latency_ms", latencyMs,
	)

	resultType := "ok"
	if resp.TotalResults == 0 {
		resultType = "zero_result"
	}
	cacheStatus := "none"
	if h.cache != nil {
		if cacheHit {
			cacheStatus = "hit"
		} else {
			cacheStatus = "miss"
		}
	}
	h.observeQuery(resultType, cacheStatus, resp.TotalResults, start)

	if h.collector != nil {
		eventType := analytics.EventCacheMiss
		if cacheHit {
			eventType = analytics.EventCacheHit
		}
		h.collector.Track(analytics.SearchEvent{
			Type:       eventType,
			Query:      req.Query,
			BookFilter: req.BookFilter,
			Returned:   resp.TotalResults,
			LatencyMs:  latencyMs,
			CacheHit:   cacheHit,
			Timestamp:  time.Now().UTC(),
			RequestID:  middleware.GetRequestID(ctx),
		})
	}
	return resp, true
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		h.writeError(w, http.StatusServiceUnavailable, "corpus is not available")
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.Stats())
}

func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		h.writeError(w, http.StatusServiceUnavailable, "corpus is not available")
		return
	}
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	sources := h.service.ListSources(limit)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total_sources": len(sources),
		"sources":       sources,
	})
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Legal Knowledge Search API",
		"version": Version,
		"search":  "/search",
		"stats":   "/stats",
		"sources": "/sources",
		"health":  "/health/ready",
	})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": strconv.FormatFloat(hitRate, 'f', 1, 64) + "%",
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) observeQuery(resultType, cacheStatus string, returned int, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(time.Since(start).Seconds())
	h.metrics.SearchResultsCount.WithLabelValues().Observe(float64(returned))
	switch cacheStatus {
	case "hit":
		h.metrics.CacheHitsTotal.Inc()
	case "miss":
		h.metrics.CacheMissesTotal.Inc()
	}
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "search failed"
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
