package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelyf/internal/filter"
	"github.com/desertthunder/tunelyf/internal/models"
	"github.com/desertthunder/tunelyf/internal/services"
	"github.com/desertthunder/tunelyf/internal/shared"
)

// Endpoint paths served by [CatalogHandler].
const (
	RouteSearch    = "/audius-search"
	RouteSearchNew = "/audius-search-new"
	RouteHindi     = "/audius-hindi"
	RouteTrending  = "/audius-trending"
	RouteStream    = "/audius-stream"
	RouteHealth    = "/health"
)

// TracksResponse is the body of search and trending responses.
type TracksResponse struct {
	Data []models.Track `json:"data"`
}

// StreamResponse is the body of a resolved stream lookup.
type StreamResponse struct {
	StreamURL string `json:"streamUrl"`
}

// endpoint binds a route to a policy and the message returned when the upstream call fails.
type endpoint struct {
	transformer *filter.Transformer
	failure     string
}

// CatalogOpts configures a [CatalogHandler].
type CatalogOpts struct {
	Catalog         services.Catalog
	Policies        filter.Policies
	FetchMultiplier int
	MaxFetch        int
	Logger          *log.Logger
}

// CatalogHandler serves the search, trending and stream endpoints.
//
// It holds only immutable state and is safe for concurrent use.
type CatalogHandler struct {
	catalog    services.Catalog
	search     map[string]endpoint
	trending   endpoint
	multiplier int
	maxFetch   int
	logger     *log.Logger
}

// NewCatalogHandler builds the handler, failing when a required policy is missing.
func NewCatalogHandler(opts CatalogOpts) (*CatalogHandler, error) {
	if opts.Catalog == nil {
		return nil, errors.New("catalog handler requires a catalog")
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	bind := func(policy, failure string) (endpoint, error) {
		p, err := opts.Policies.Get(policy)
		if err != nil {
			return endpoint{}, err
		}
		return endpoint{transformer: filter.New(p), failure: failure}, nil
	}

	h := &CatalogHandler{
		catalog:    opts.Catalog,
		search:     make(map[string]endpoint, 3),
		multiplier: opts.FetchMultiplier,
		maxFetch:   opts.MaxFetch,
		logger:     shared.WithLogger(opts.Logger, "catalog", opts.Catalog.Name()),
	}

	routes := []struct{ path, policy, failure string }{
		{RouteSearch, filter.PolicySearch, "Failed to fetch from Audius"},
		{RouteSearchNew, filter.PolicySearchNew, "Search failed"},
		{RouteHindi, filter.PolicyHindi, "Search failed"},
	}
	for _, rt := range routes {
		ep, err := bind(rt.policy, rt.failure)
		if err != nil {
			return nil, err
		}
		h.search[rt.path] = ep
	}

	trending, err := bind(filter.PolicyTrending, "Trending fetch failed")
	if err != nil {
		return nil, err
	}
	h.trending = trending

	return h, nil
}

// Routes returns the HTTP routes this handler serves.
func (h *CatalogHandler) Routes() []string {
	return []string{RouteSearch, RouteSearchNew, RouteHindi, RouteTrending, RouteStream}
}

// ServeHTTP dispatches on the request path. Only GET and HEAD are accepted.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(r.Method, http.MethodGet) {
		MethodNotAllowed(w, allowHeader(http.MethodGet))
		return
	}

	switch path := r.URL.Path; path {
	case RouteTrending:
		h.handleTrending(w, r)
	case RouteStream:
		h.handleStream(w, r)
	default:
		ep, ok := h.search[path]
		if !ok {
			NotFound(w, r)
			return
		}
		h.handleSearch(w, r, ep)
	}
}

// QueryText returns the search text from the artist or query parameter, artist first.
func QueryText(r *http.Request) string {
	q := r.URL.Query()
	if artist := strings.TrimSpace(q.Get("artist")); artist != "" {
		return artist
	}
	return strings.TrimSpace(q.Get("query"))
}

func (h *CatalogHandler) handleSearch(w http.ResponseWriter, r *http.Request, ep endpoint) {
	query := QueryText(r)
	if query == "" {
		writeError(w, http.StatusBadRequest, "Artist name is required")
		return
	}

	window := h.window(r, ep)
	tracks, err := h.catalog.Search(r.Context(), query, filter.FetchSize(window, h.multiplier, h.maxFetch))
	if err != nil {
		h.upstreamFailure(w, r, ep, err)
		return
	}

	writeJSON(w, http.StatusOK, TracksResponse{Data: ep.transformer.Apply(tracks, query, window)})
}

func (h *CatalogHandler) handleTrending(w http.ResponseWriter, r *http.Request) {
	ep := h.trending
	window := h.window(r, ep)
	tracks, err := h.catalog.Trending(r.Context(), filter.FetchSize(window, h.multiplier, h.maxFetch))
	if err != nil {
		h.upstreamFailure(w, r, ep, err)
		return
	}

	writeJSON(w, http.StatusOK, TracksResponse{Data: ep.transformer.Apply(tracks, "", window)})
}

func (h *CatalogHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	trackID := strings.TrimSpace(r.URL.Query().Get("trackId"))
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "trackId is required")
		return
	}

	streamURL, err := h.catalog.ResolveStream(r.Context(), trackID)
	switch {
	case errors.Is(err, shared.ErrStreamNotFound):
		h.logger.Warn("no stream location", "id", RequestIDFrom(r.Context()), "track", trackID)
		writeError(w, http.StatusNotFound, "Stream URL not found")
	case err != nil:
		h.logError(r, "stream lookup failed", err, "track", trackID)
		writeError(w, http.StatusInternalServerError, "Failed to get stream URL")
	default:
		writeJSON(w, http.StatusOK, StreamResponse{StreamURL: streamURL})
	}
}

func (h *CatalogHandler) window(r *http.Request, ep endpoint) filter.Window {
	q := r.URL.Query()
	return filter.ParseWindow(q.Get("offset"), q.Get("limit"), ep.transformer.Policy().DefaultLimit)
}

func (h *CatalogHandler) upstreamFailure(w http.ResponseWriter, r *http.Request, ep endpoint, err error) {
	h.logError(r, "upstream request failed", err, "policy", ep.transformer.Policy().Name)
	writeError(w, http.StatusInternalServerError, ep.failure)
}

// logError demotes requests the client abandoned to debug.
func (h *CatalogHandler) logError(r *http.Request, msg string, err error, kv ...any) {
	if errors.Is(err, context.Canceled) {
		h.logger.Debug(msg, "id", RequestIDFrom(r.Context()), "error", err)
		return
	}
	h.logger.Error(msg, append([]any{"id", RequestIDFrom(r.Context()), "error", err}, kv...)...)
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	service string
}

// NewHealthHandler creates a [HealthHandler] reporting the named upstream.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{RouteHealth}
}

// ServeHTTP reports ok. It never calls upstream.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "upstream": h.service})
}
