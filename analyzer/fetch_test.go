package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-audit/backend/logging"
)

func TestFetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		fmt.Fprint(w, "<html><body>hello</body></html>")
	}))
	defer server.Close()

	body, err := NewFetcher(logging.NewNop()).FetchDocument(context.Background(), server.URL, time.Second)

	require.NoError(t, err)
	assert.Contains(t, body, "hello")
}

func TestFetchDocumentHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewFetcher(logging.NewNop()).FetchDocument(context.Background(), server.URL, time.Second)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, ErrKindHTTPStatus, fetchErr.Kind)
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestFetchDocumentTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	_, err := NewFetcher(logging.NewNop()).FetchDocument(context.Background(), server.URL, 50*time.Millisecond)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, ErrKindTimeout, fetchErr.Kind)
}

func TestFetchDocumentNetworkError(t *testing.T) {
	_, err := NewFetcher(logging.NewNop()).FetchDocument(context.Background(), "http://127.0.0.1:1", time.Second)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, ErrKindNetwork, fetchErr.Kind)
}

func TestFetchOptionalSwallowsFailures(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	f := NewFetcher(logging.NewNop())
	assert.Empty(t, f.FetchOptional(context.Background(), server.URL+"/robots.txt"))
	assert.Empty(t, f.FetchOptional(context.Background(), "http://127.0.0.1:1/robots.txt"))
}

func TestFetchPageJoinsArtifacts(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Robots-Tag", "NoIndex")
		fmt.Fprint(w, "<html><body>content</body></html>")
	})
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	})
	mux.HandleFunc("/llms.txt", http.NotFound)
	mux.HandleFunc("/.well-known/llms.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "# Example\n\nDocs for AI agents.\n")
	})

	pf, err := NewFetcher(logging.NewNop()).fetchPage(context.Background(), server.URL+"/page")

	require.NoError(t, err)
	assert.Contains(t, pf.body, "content")
	// Header directives are matched case-insensitively downstream.
	assert.Equal(t, "noindex", pf.robotsTag)
	assert.Contains(t, pf.artifacts.Robots, "User-agent")
	// The well-known path is the fallback when /llms.txt is absent.
	assert.Contains(t, pf.artifacts.LLMSTxt, "AI agents")
	assert.Greater(t, pf.latency, time.Duration(0))
}

func TestFetchPageDocumentErrorWins(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	})

	_, err := NewFetcher(logging.NewNop()).fetchPage(context.Background(), server.URL+"/missing")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, ErrKindHTTPStatus, fetchErr.Kind)
}
