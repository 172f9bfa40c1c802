// Audius discovery provider [Catalog] implementation
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tunelyf/internal/models"
	"github.com/desertthunder/tunelyf/internal/shared"
)

const (
	defaultAudiusBaseURL   = "https://discoveryprovider.audius.co"
	defaultUserAgent       = "TuneLyfApp/1.0"
	defaultTrendingWindow  = "week"
	maxErrorBodyBytes      = 1024
	defaultUpstreamTimeout = 10 * time.Second
)

// AudiusOpts configures an [AudiusService]. Zero values take defaults.
type AudiusOpts struct {
	BaseURL        string
	AppName        string
	UserAgent      string
	TrendingWindow string
	HTTPClient     *http.Client
}

// AudiusOptsFromConfig maps [shared.UpstreamConfig] onto [AudiusOpts].
func AudiusOptsFromConfig(cfg shared.UpstreamConfig) AudiusOpts {
	timeout := defaultUpstreamTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return AudiusOpts{
		BaseURL:        cfg.BaseURL,
		AppName:        cfg.AppName,
		UserAgent:      cfg.UserAgent,
		TrendingWindow: cfg.TrendingWindow,
		HTTPClient:     &http.Client{Timeout: timeout},
	}
}

// AudiusService implements the [Catalog] interface against a single discovery provider.
type AudiusService struct {
	baseURL        string
	appName        string
	userAgent      string
	trendingWindow string
	httpClient     *http.Client
	streamClient   *http.Client
}

// NewAudiusService creates a new Audius catalog client.
func NewAudiusService(opts AudiusOpts) *AudiusService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultAudiusBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.TrendingWindow == "" {
		opts.TrendingWindow = defaultTrendingWindow
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	// Same transport and timeout, but 3xx responses are returned instead of followed.
	streamClient := *opts.HTTPClient
	streamClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &AudiusService{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		appName:        opts.AppName,
		userAgent:      opts.UserAgent,
		trendingWindow: opts.TrendingWindow,
		httpClient:     opts.HTTPClient,
		streamClient:   &streamClient,
	}
}

// Name returns the service name.
func (a *AudiusService) Name() string {
	return "Audius"
}

// Search retrieves tracks matching the query.
//
// Calls GET /v1/tracks/search?query={query}&limit={limit}.
func (a *AudiusService) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	return a.fetchTracks(ctx, "/v1/tracks/search", params)
}

// Trending retrieves trending tracks for the configured time window.
//
// Calls GET /v1/tracks/trending?limit={limit}&time={window}.
func (a *AudiusService) Trending(ctx context.Context, limit int) ([]models.Track, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("time", a.trendingWindow)

	return a.fetchTracks(ctx, "/v1/tracks/trending", params)
}

// ResolveStream finds the redirect target for a track's audio.
//
// Calls GET /v1/tracks/{id}/stream without following redirects. Any 2xx or 3xx status counts as success;
// the Location header, resolved against the request URL, is the stream URL.
func (a *AudiusService) ResolveStream(ctx context.Context, trackID string) (string, error) {
	if strings.TrimSpace(trackID) == "" {
		return "", fmt.Errorf("%w: trackId", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("/v1/tracks/%s/stream", url.PathEscape(trackID))
	req, err := a.newRequest(ctx, endpoint, url.Values{})
	if err != nil {
		return "", err
	}

	resp, err := a.streamClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", statusError(resp)
	}

	location, err := resp.Location()
	if errors.Is(err, http.ErrNoLocation) {
		return "", fmt.Errorf("%w: track %s (status %d)", shared.ErrStreamNotFound, trackID, resp.StatusCode)
	}
	if err != nil {
		return "", fmt.Errorf("%w: invalid Location header: %w", shared.ErrAPIRequest, err)
	}

	return location.String(), nil
}

type trackEnvelope struct {
	Data []models.Track `json:"data"`
}

func (a *AudiusService) fetchTracks(ctx context.Context, endpoint string, params url.Values) ([]models.Track, error) {
	req, err := a.newRequest(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}

	var envelope trackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
	}

	if envelope.Data == nil {
		return []models.Track{}, nil
	}
	return envelope.Data, nil
}

func (a *AudiusService) newRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	if a.appName != "" {
		params.Set("app_name", a.appName)
	}

	apiURL := a.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", shared.ErrAPIRequest, err)
	}

	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(body)))
}

func drain(body io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(body, maxErrorBodyBytes))
	body.Close()
}
