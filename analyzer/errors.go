package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FetchErrorKind classifies a failed fetch.
type FetchErrorKind string

const (
	// ErrKindNetwork is a connection-level failure (DNS, refused, reset).
	ErrKindNetwork FetchErrorKind = "network"
	// ErrKindHTTPStatus is a non-2xx response.
	ErrKindHTTPStatus FetchErrorKind = "http_status"
	// ErrKindTimeout means the fetch exceeded its budget and was canceled.
	ErrKindTimeout FetchErrorKind = "timeout"
)

// FetchError describes a failed document fetch.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrKindHTTPStatus:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	case ErrKindTimeout:
		return fmt.Sprintf("fetch %s: timed out", e.URL)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// classifyFetchError wraps a transport error as a FetchError of the right kind.
func classifyFetchError(url string, err error) *FetchError {
	kind := ErrKindNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrKindTimeout
	}
	return &FetchError{Kind: kind, URL: url, Err: err}
}

// ResolverError is returned when no analyzable page set could be found. It is
// fatal only in sitemap-required mode and carries a machine-readable code plus
// remediation guidance for the caller to surface.
type ResolverError struct {
	Code        string `json:"code"`
	Message     string `json:"error"`
	Remediation string `json:"remediation"`
}

func (e *ResolverError) Error() string { return e.Message }

// CodeSitemapRequired identifies the distinguished missing-sitemap condition.
const CodeSitemapRequired = "sitemap_required"

func newSitemapRequiredError(rootURL string) *ResolverError {
	return &ResolverError{
		Code:    CodeSitemapRequired,
		Message: fmt.Sprintf("no sitemap found for %s", rootURL),
		Remediation: "Publish a sitemap.xml at the site root (or a sitemap index referencing one) " +
			"so crawlers can discover your pages, then run the audit again.",
	}
}
