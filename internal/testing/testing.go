// package testing contains shared testing utilities
package testing

import (
	"context"
	"net/http"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
)

// MockSearcher is a test double for [services.Searcher].
// It records queries and serves canned results or a canned error.
type MockSearcher struct {
	Results []models.SearchResult
	Err     error
	Queries []string
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
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
