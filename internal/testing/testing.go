// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// MockLookup is a test double for services.Lookup backed by in-memory maps.
//
// Unknown ISBNs and author keys report [shared.ErrBookNotFound]. BookErr, when set, is returned for every book lookup.
type MockLookup struct {
	Books      map[string]*models.BookMetadata
	Authors    map[string]string
	AuthorErrs map[string]error
	BookErr    error

	mu          sync.Mutex
	bookCalls   []string
	authorCalls []string
}

func (m *MockLookup) BookByISBN(ctx context.Context, isbn string) (*models.BookMetadata, error) {
	m.mu.Lock()
	m.bookCalls = append(m.bookCalls, isbn)
	m.mu.Unlock()

	if m.BookErr != nil {
		return nil, m.BookErr
	}
	b, ok := m.Books[isbn]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrBookNotFound, isbn)
	}
	cp := *b
	cp.AuthorKeys = append([]string(nil), b.AuthorKeys...)
	return &cp, nil
}

func (m *MockLookup) AuthorByKey(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	m.authorCalls = append(m.authorCalls, key)
	m.mu.Unlock()

	if err, ok := m.AuthorErrs[key]; ok {
		return "", err
	}
	name, ok := m.Authors[key]
	if !ok {
		return "", fmt.Errorf("%w: author %s", shared.ErrBookNotFound, key)
	}
	return name, nil
}

func (m *MockLookup) Name() string { return "mock" }

// BookCalls returns the ISBNs passed to BookByISBN, in call order.
func (m *MockLookup) BookCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bookCalls...)
}

// AuthorCalls returns the keys passed to AuthorByKey, in call order.
func (m *MockLookup) AuthorCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.authorCalls...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
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

var _ io.ReadCloser = (*FCloser)(nil)

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

// MustWriteFile writes content to path with 0644 permissions.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
