// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tunelyf/internal/models"
)

// MockCatalog is a test double for [services.Catalog] that records every call.
type MockCatalog struct {
	Tracks    []models.Track
	StreamURL string
	Err       error

	mu            sync.Mutex
	SearchCalls   []SearchCall
	TrendingCalls []int
	StreamCalls   []string
}

// SearchCall records the arguments of one Search call.
type SearchCall struct {
	Query string
	Limit int
}

func (m *MockCatalog) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, SearchCall{Query: query, Limit: limit})
	m.mu.Unlock()
	return m.Tracks, m.Err
}

func (m *MockCatalog) Trending(ctx context.Context, limit int) ([]models.Track, error) {
	m.mu.Lock()
	m.TrendingCalls = append(m.TrendingCalls, limit)
	m.mu.Unlock()
	return m.Tracks, m.Err
}

func (m *MockCatalog) ResolveStream(ctx context.Context, trackID string) (string, error) {
	m.mu.Lock()
	m.StreamCalls = append(m.StreamCalls, trackID)
	m.mu.Unlock()
	return m.StreamURL, m.Err
}

func (m *MockCatalog) Name() string { return "mock" }

// Calls returns the total number of upstream calls made.
func (m *MockCatalog) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SearchCalls) + len(m.TrendingCalls) + len(m.StreamCalls)
}

// Track builds a playable track that passes the streamability and default duration gates.
func Track(id, title string) models.Track {
	return models.Track{
		ID:         id,
		Title:      title,
		Duration:   models.Seconds(200),
		Streamable: models.Bool(true),
		Deleted:    models.Bool(false),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// FailOnceWriter fails its first Write and forwards the rest to Target
type FailOnceWriter struct {
	Target io.Writer
	failed bool
}

func (f *FailOnceWriter) Write(p []byte) (n int, err error) {
	if !f.failed {
		f.failed = true
		return 0, errors.New("write failed")
	}
	return f.Target.Write(p)
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
