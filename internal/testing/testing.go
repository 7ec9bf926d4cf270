// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/source"
)

// MockSource is a configurable test double for [source.Plugin]
type MockSource struct {
	SourceName   string
	ValidateFn   func(string) bool
	InitErr      error
	ResolveFn    func(ctx context.Context, input string) (*models.Resolved, error)
	SearchSongFn func(ctx context.Context, query string) *models.Song
	SearchFn     func(ctx context.Context, query string, opts source.SearchOptions) []models.Song
	StreamURLFn  func(ctx context.Context, song *models.Song) (string, error)
	RelatedFn    func(ctx context.Context, song *models.Song) []models.Song
}

func (m *MockSource) Name() string {
	if m.SourceName == "" {
		return "mock"
	}
	return m.SourceName
}

func (m *MockSource) Validate(input string) bool {
	if m.ValidateFn == nil {
		return false
	}
	return m.ValidateFn(input)
}

func (m *MockSource) Init(ctx context.Context) error { return m.InitErr }

func (m *MockSource) Resolve(ctx context.Context, input string) (*models.Resolved, error) {
	if m.ResolveFn == nil {
		return nil, errors.New("resolve not configured")
	}
	return m.ResolveFn(ctx, input)
}

func (m *MockSource) SearchSong(ctx context.Context, query string) *models.Song {
	if m.SearchSongFn == nil {
		return nil
	}
	return m.SearchSongFn(ctx, query)
}

func (m *MockSource) Search(ctx context.Context, query string, opts source.SearchOptions) []models.Song {
	if m.SearchFn == nil {
		return nil
	}
	return m.SearchFn(ctx, query, opts)
}

func (m *MockSource) StreamURL(ctx context.Context, song *models.Song) (string, error) {
	if m.StreamURLFn == nil {
		return "", errors.New("stream not configured")
	}
	return m.StreamURLFn(ctx, song)
}

func (m *MockSource) RelatedSongs(ctx context.Context, song *models.Song) []models.Song {
	if m.RelatedFn == nil {
		return nil
	}
	return m.RelatedFn(ctx, song)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
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

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
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
