package analyzer

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/geo-audit/backend/logging"
)

// Fetch budgets. Timeouts cancel the underlying request via context, they do
// not just abandon it.
const (
	documentTimeout = 15 * time.Second
	artifactTimeout = 10 * time.Second

	userAgent    = "GEOAuditBot/1.0"
	maxBodyBytes = 5 << 20 // 5 MB
)

// Well-known artifact paths.
const (
	robotsPath       = "/robots.txt"
	llmsTxtPath      = "/llms.txt"
	llmsTxtWellKnown = "/.well-known/llms.txt"
)

// Artifacts are the optional per-host policy files fetched alongside a page.
// Empty strings mean the artifact is absent.
type Artifacts struct {
	Robots  string
	LLMSTxt string
}

// Fetcher retrieves documents and policy artifacts with bounded timeouts.
type Fetcher struct {
	client *http.Client
	log    *logging.Logger
}

// NewFetcher creates a Fetcher with a pooled, keep-alive transport.
func NewFetcher(log *logging.Logger) *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Fetcher{
		client: &http.Client{Transport: transport},
		log:    log,
	}
}

// FetchDocument retrieves the body at rawURL within the given timeout.
// Failures are typed: network, non-2xx status, or timeout.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{Kind: ErrKindNetwork, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyFetchError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Kind: ErrKindHTTPStatus, URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", classifyFetchError(rawURL, err)
	}
	return string(body), nil
}

// FetchOptional retrieves rawURL, returning "" on any failure. Used for
// artifacts that are expected to be frequently absent.
func (f *Fetcher) FetchOptional(ctx context.Context, rawURL string) string {
	body, err := f.FetchDocument(ctx, rawURL, artifactTimeout)
	if err != nil {
		return ""
	}
	return body
}

// pageFetch is the joined result of one page fetch: the document body, its
// X-Robots-Tag header, the host artifacts, and the document latency.
type pageFetch struct {
	body      string
	robotsTag string
	artifacts Artifacts
	latency   time.Duration
}

// fetchPage retrieves the document and both optional artifacts concurrently.
// A slow artifact is bounded by its own timeout and cannot delay the join
// beyond that budget.
func (f *Fetcher) fetchPage(ctx context.Context, pageURL string) (*pageFetch, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, &FetchError{Kind: ErrKindNetwork, URL: pageURL, Err: err}
	}
	origin := parsed.Scheme + "://" + parsed.Host

	var (
		wg     sync.WaitGroup
		pf     pageFetch
		docErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		start := time.Now()
		pf.body, pf.robotsTag, docErr = f.fetchDocumentWithHeader(ctx, pageURL)
		pf.latency = time.Since(start)
	}()
	go func() {
		defer wg.Done()
		pf.artifacts.Robots = f.FetchOptional(ctx, origin+robotsPath)
	}()
	go func() {
		defer wg.Done()
		body := f.FetchOptional(ctx, origin+llmsTxtPath)
		if body == "" {
			body = f.FetchOptional(ctx, origin+llmsTxtWellKnown)
		}
		pf.artifacts.LLMSTxt = body
	}()
	wg.Wait()

	if docErr != nil {
		return nil, docErr
	}
	return &pf, nil
}

// fetchDocumentWithHeader is FetchDocument plus the X-Robots-Tag response
// header, which carries the header-equivalent of the robots meta directive.
func (f *Fetcher) fetchDocumentWithHeader(ctx context.Context, rawURL string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, documentTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", &FetchError{Kind: ErrKindNetwork, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", classifyFetchError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", &FetchError{Kind: ErrKindHTTPStatus, URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", classifyFetchError(rawURL, err)
	}
	return string(body), strings.ToLower(resp.Header.Get("X-Robots-Tag")), nil
}
