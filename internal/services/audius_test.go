package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tunelyf/internal/shared"
	tu "github.com/desertthunder/tunelyf/internal/testing"
)

const searchBody = `{"data": [
	{"id": "a", "title": "Tum Hi Ho", "user": {"name": "Arijit Singh"}, "duration": 262, "is_streamable": true, "is_delete": false},
	{"id": "b", "title": "Other", "tags": "lofi,chill"}
]}`

func TestAudiusService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Defaults", func(t *testing.T) {
			svc := NewAudiusService(AudiusOpts{})

			if svc.baseURL != defaultAudiusBaseURL {
				t.Errorf("expected baseURL %s, got %s", defaultAudiusBaseURL, svc.baseURL)
			}
			if svc.userAgent != defaultUserAgent {
				t.Errorf("expected user agent %s, got %s", defaultUserAgent, svc.userAgent)
			}
			if svc.trendingWindow != "week" {
				t.Errorf("expected trending window week, got %s", svc.trendingWindow)
			}
			if svc.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
			if svc.streamClient == http.DefaultClient || svc.streamClient.CheckRedirect == nil {
				t.Error("expected a separate non-following stream client")
			}
			if http.DefaultClient.CheckRedirect != nil {
				t.Error("default client must not be modified")
			}
		})

		t.Run("Trims Trailing Slash", func(t *testing.T) {
			svc := NewAudiusService(AudiusOpts{BaseURL: "http://example.com/"})
			if svc.baseURL != "http://example.com" {
				t.Errorf("expected trimmed baseURL, got %s", svc.baseURL)
			}
		})

		t.Run("From Config", func(t *testing.T) {
			cfg := shared.DefaultConfig().Upstream
			cfg.Timeout = 3
			opts := AudiusOptsFromConfig(cfg)

			if opts.HTTPClient.Timeout != 3*time.Second {
				t.Errorf("expected 3s timeout, got %v", opts.HTTPClient.Timeout)
			}
			if opts.UserAgent != "TuneLyfApp/1.0" {
				t.Errorf("expected configured user agent, got %s", opts.UserAgent)
			}

			cfg.Timeout = 0
			if got := AudiusOptsFromConfig(cfg).HTTPClient.Timeout; got != defaultUpstreamTimeout {
				t.Errorf("expected default timeout, got %v", got)
			}
		})
	})

	t.Run("Name", func(t *testing.T) {
		if name := NewAudiusService(AudiusOpts{}).Name(); name != "Audius" {
			t.Errorf("expected name Audius, got %s", name)
		}
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("Successful Request", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/v1/tracks/search" {
					t.Errorf("expected path /v1/tracks/search, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("query"); got != "arijit singh" {
					t.Errorf("expected query 'arijit singh', got %q", got)
				}
				if got := r.URL.Query().Get("limit"); got != "20" {
					t.Errorf("expected limit 20, got %s", got)
				}
				if got := r.URL.Query().Get("app_name"); got != "tunelyf" {
					t.Errorf("expected app_name tunelyf, got %q", got)
				}
				if got := r.Header.Get("User-Agent"); got != "TuneLyfApp/1.0 (test)" {
					t.Errorf("expected custom user agent, got %q", got)
				}

				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, searchBody)
			}))
			defer server.Close()

			svc := NewAudiusService(AudiusOpts{BaseURL: server.URL, AppName: "tunelyf", UserAgent: "TuneLyfApp/1.0 (test)"})
			tracks, err := svc.Search(context.Background(), "arijit singh", 20)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(tracks) != 2 {
				t.Fatalf("expected 2 tracks, got %d", len(tracks))
			}
			if tracks[0].ID != "a" || tracks[0].Uploader != "Arijit Singh" {
				t.Errorf("unexpected first track: %+v", tracks[0])
			}
			if len(tracks[1].Tags) != 2 || tracks[1].Tags[0] != "lofi" {
				t.Errorf("expected comma-separated tags to be split, got %v", tracks[1].Tags)
			}
		})

		t.Run("Omits App Name When Unset", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Has("app_name") {
					t.Error("expected no app_name parameter")
				}
				fmt.Fprint(w, `{"data": []}`)
			}))
			defer server.Close()

			if _, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).Search(context.Background(), "x", 1); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Missing Data Is Empty", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{}`)
			}))
			defer server.Close()

			tracks, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).Search(context.Background(), "x", 10)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tracks == nil || len(tracks) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", tracks)
			}
		})

		t.Run("Empty Query", func(t *testing.T) {
			_, err := NewAudiusService(AudiusOpts{}).Search(context.Background(), "  ", 10)
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Non-2xx Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				fmt.Fprint(w, "provider unhealthy")
			}))
			defer server.Close()

			_, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).Search(context.Background(), "x", 10)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "status 502") || !strings.Contains(err.Error(), "provider unhealthy") {
				t.Errorf("expected status and body in error, got %v", err)
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data": [`)
			}))
			defer server.Close()

			_, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).Search(context.Background(), "x", 10)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			_, err := NewAudiusService(AudiusOpts{BaseURL: "http://example.com", HTTPClient: client}).Search(context.Background(), "x", 10)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "connection failed") {
				t.Errorf("expected transport error detail, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			_, err := NewAudiusService(AudiusOpts{BaseURL: "http://example.com", HTTPClient: client}).Search(context.Background(), "x", 10)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Invalid Base URL", func(t *testing.T) {
			_, err := NewAudiusService(AudiusOpts{BaseURL: "http://example.com\x00"}).Search(context.Background(), "x", 10)
			if !errors.Is(err, shared.ErrAPIRequest) || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected request creation error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data": []}`)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).Search(ctx, "x", 10)
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("Trending", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/tracks/trending" {
				t.Errorf("expected path /v1/tracks/trending, got %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("time"); got != "month" {
				t.Errorf("expected time month, got %q", got)
			}
			if got := r.URL.Query().Get("limit"); got != "40" {
				t.Errorf("expected limit 40, got %q", got)
			}
			fmt.Fprint(w, searchBody)
		}))
		defer server.Close()

		svc := NewAudiusService(AudiusOpts{BaseURL: server.URL, TrendingWindow: "month"})
		tracks, err := svc.Trending(context.Background(), 40)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected 2 tracks, got %d", len(tracks))
		}
	})

	t.Run("ResolveStream", func(t *testing.T) {
		t.Run("Redirect", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/tracks/XYZ/stream" {
					t.Errorf("expected path /v1/tracks/XYZ/stream, got %s", r.URL.Path)
				}
				w.Header().Set("Location", "https://cdn/x.mp3")
				w.WriteHeader(http.StatusFound)
			}))
			defer server.Close()

			streamURL, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).ResolveStream(context.Background(), "XYZ")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if streamURL != "https://cdn/x.mp3" {
				t.Errorf("expected https://cdn/x.mp3, got %s", streamURL)
			}
		})

		t.Run("Relative Location Is Resolved", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Location", "/content/abc.mp3")
				w.WriteHeader(http.StatusTemporaryRedirect)
			}))
			defer server.Close()

			streamURL, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).ResolveStream(context.Background(), "abc")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if streamURL != server.URL+"/content/abc.mp3" {
				t.Errorf("expected absolute URL, got %s", streamURL)
			}
		})

		t.Run("2xx With Location", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Location", "https://cdn/y.mp3")
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			streamURL, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).ResolveStream(context.Background(), "y")
			if err != nil || streamURL != "https://cdn/y.mp3" {
				t.Errorf("expected https://cdn/y.mp3, got %q (%v)", streamURL, err)
			}
		})

		t.Run("No Location", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			_, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).ResolveStream(context.Background(), "XYZ")
			if !errors.Is(err, shared.ErrStreamNotFound) {
				t.Errorf("expected ErrStreamNotFound, got %v", err)
			}
		})

		t.Run("Upstream Not Found", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			_, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).ResolveStream(context.Background(), "XYZ")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Escapes Track ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.EscapedPath() != "/v1/tracks/a%2Fb/stream" {
					t.Errorf("expected escaped id, got %s", r.URL.EscapedPath())
				}
				w.Header().Set("Location", "https://cdn/z.mp3")
				w.WriteHeader(http.StatusFound)
			}))
			defer server.Close()

			if _, err := NewAudiusService(AudiusOpts{BaseURL: server.URL}).ResolveStream(context.Background(), "a/b"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Empty Track ID", func(t *testing.T) {
			_, err := NewAudiusService(AudiusOpts{}).ResolveStream(context.Background(), "")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection reset")),
			}

			_, err := NewAudiusService(AudiusOpts{HTTPClient: client}).ResolveStream(context.Background(), "XYZ")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})
}
