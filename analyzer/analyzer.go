// Package analyzer implements the AI-crawler readiness engine: page-set
// discovery, document and artifact fetching, the four category scorers,
// recommendation synthesis and site-level aggregation into an action plan.
package analyzer

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/geo-audit/backend/logging"
	"github.com/geo-audit/backend/stats"
)

// defaultPageDelay is the politeness throttle between pages of one site.
const defaultPageDelay = 400 * time.Millisecond

// defaultProblemThreshold marks successful pages below it as problem pages.
const defaultProblemThreshold = 70

// Options configures an Analyzer. Zero values fall back to defaults.
type Options struct {
	// SitemapRequired makes a missing sitemap fatal instead of falling back to
	// crawling the homepage.
	SitemapRequired bool
	// MaxPages caps pages per site audit (hard cap MaxPages).
	MaxPages int
	// PageDelay is the politeness delay between page fetches.
	PageDelay time.Duration
	// ProblemThreshold is the problem-page score cutoff.
	ProblemThreshold int
	// Stats optionally records audit counters.
	Stats *stats.Storage
}

// Analyzer runs the stateless audit pipeline. Every call rebuilds all report
// entities from scratch; nothing is shared across requests.
type Analyzer struct {
	fetcher          *Fetcher
	resolver         *Resolver
	log              *logging.Logger
	pageDelay        time.Duration
	problemThreshold int
	stats            *stats.Storage
}

// New creates an Analyzer.
func New(log *logging.Logger, opts Options) *Analyzer {
	if opts.PageDelay <= 0 {
		opts.PageDelay = defaultPageDelay
	}
	if opts.ProblemThreshold <= 0 {
		opts.ProblemThreshold = defaultProblemThreshold
	}

	fetcher := NewFetcher(log)
	return &Analyzer{
		fetcher:          fetcher,
		resolver:         NewResolver(fetcher, log, opts.SitemapRequired, opts.MaxPages),
		log:              log,
		pageDelay:        opts.PageDelay,
		problemThreshold: opts.ProblemThreshold,
		stats:            opts.Stats,
	}
}

// AnalyzeSite resolves the page set for rawURL and runs the full pipeline:
// fetch, score, synthesize per page, then aggregate and prioritize. A per-page
// failure marks only that page; only a resolver failure in sitemap-required
// mode aborts the run.
func (a *Analyzer) AnalyzeSite(ctx context.Context, rawURL string) (*SiteReport, error) {
	start := time.Now()

	root, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	urls, sitemapFound, err := a.resolver.Resolve(ctx, root)
	if err != nil {
		return nil, err
	}

	pages := make([]PageAnalysis, 0, len(urls))
	for i, pageURL := range urls {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.pageDelay):
			}
		}
		page, _ := a.analyzePage(ctx, pageURL) // per-page failures stay on the page
		pages = append(pages, page)
	}

	summary := buildSummary(pages)
	deduped := collectRecommendations(pages)

	report := &SiteReport{
		ReportID:        uuid.NewString(),
		RootURL:         root.String(),
		GeneratedAt:     time.Now().UTC(),
		DurationMs:      time.Since(start).Milliseconds(),
		SitemapFound:    sitemapFound,
		Pages:           pages,
		Summary:         summary,
		ProblemPages:    problemPages(pages, a.problemThreshold),
		Recommendations: globalRecommendations(deduped, summary.PagesAnalyzed),
		ActionPlan:      buildActionPlan(deduped, summary.AverageScore),
	}

	a.log.Infow("site audit complete",
		"root", report.RootURL,
		"pages", summary.PagesAnalyzed,
		"failed", summary.PagesFailed,
		"average", summary.AverageScore,
		"duration_ms", report.DurationMs,
	)
	if a.stats != nil {
		a.stats.RecordSiteAudit(summary.PagesAnalyzed, summary.PagesAnalyzed == 0, time.Since(start))
	}
	return report, nil
}

// AnalyzePage is the single-page entry point. Unlike pages inside a site
// audit, a document fetch failure here propagates to the caller.
func (a *Analyzer) AnalyzePage(ctx context.Context, rawURL string) (*PageAnalysis, error) {
	start := time.Now()

	root, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	page, err := a.analyzePage(ctx, root.String())
	if a.stats != nil {
		a.stats.RecordPageAudit(!page.Success, time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

type pageError string

func (e pageError) Error() string { return string(e) }

// analyzePage fetches one page with its artifacts, runs the four scorers and
// synthesizes recommendations. Failures degrade to a zero-score entry; the
// error is also returned for callers that need to propagate it.
func (a *Analyzer) analyzePage(ctx context.Context, pageURL string) (PageAnalysis, error) {
	page := PageAnalysis{URL: pageURL}

	pf, err := a.fetcher.fetchPage(ctx, pageURL)
	if err != nil {
		a.log.Warnw("page fetch failed", "url", pageURL, "error", err)
		page.Error = err.Error()
		return page, err
	}
	page.FetchTimeMs = int(pf.latency.Milliseconds())

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pf.body))
	if err != nil {
		page.Error = "failed to parse document: " + err.Error()
		return page, err
	}

	var issues []string
	var catIssues []string

	page.MachineReadability, catIssues = scoreMachineReadability(doc)
	issues = append(issues, catIssues...)

	page.StructuredData, catIssues = scoreStructuredData(doc)
	issues = append(issues, catIssues...)

	page.ExtractionFormat, catIssues = scoreExtractionFormat(doc)
	issues = append(issues, catIssues...)

	page.BotAccessibility, catIssues = scoreBotAccessibility(doc, pf.body, pageURL, pf.artifacts, pf.robotsTag, page.FetchTimeMs)
	issues = append(issues, catIssues...)

	page.Success = true
	page.Issues = issues
	page.Score = clampScore(
		page.MachineReadability.Score+
			page.StructuredData.Score+
			page.ExtractionFormat.Score+
			page.BotAccessibility.Score,
		100,
	)

	page.Recommendations = synthesizeRecommendations(issues)
	for i := range page.Recommendations {
		page.Recommendations[i].Page = pageURL
	}
	return page, nil
}

// normalizeURL parses rawURL, defaulting the scheme to https.
func normalizeURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL != "" && !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{Kind: ErrKindNetwork, URL: rawURL, Err: err}
	}
	if u.Host == "" {
		return nil, &FetchError{Kind: ErrKindNetwork, URL: rawURL, Err: pageError("missing host")}
	}
	return u, nil
}
