package analyzer

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/geo-audit/backend/logging"
)

const (
	// MaxPages caps the number of pages analyzed per site.
	MaxPages = 20
	// maxCrawlPages caps the smaller homepage-crawl fallback.
	maxCrawlPages = 10
	// maxNestedSitemaps bounds how many children of a sitemap index are followed.
	maxNestedSitemaps = 2
)

// Conventional sitemap locations, tried in order.
var sitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
}

// Path substrings that mark a crawled link as non-content.
var crawlDenylist = []string{
	"/admin", "/login", "/signin", "/cart", "/checkout", "/account",
	"/wp-admin", "/feed", "/rss",
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".css", ".js", ".pdf", ".zip", ".xml",
}

// sitemapFile covers both sitemap shapes: a urlset of page locations and a
// sitemap index of nested sitemap locations.
type sitemapFile struct {
	XMLName  xml.Name     `xml:"-"`
	URLs     []sitemapLoc `xml:"url"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// Resolver discovers the bounded page set to analyze for a host.
type Resolver struct {
	fetcher         *Fetcher
	log             *logging.Logger
	sitemapRequired bool
	maxPages        int
	crawlLimit      int
}

// NewResolver creates a Resolver. When sitemapRequired is true a missing
// sitemap is a fatal ResolverError; otherwise the resolver falls back to
// crawling same-origin links from the homepage.
func NewResolver(fetcher *Fetcher, log *logging.Logger, sitemapRequired bool, maxPages int) *Resolver {
	if maxPages <= 0 || maxPages > MaxPages {
		maxPages = MaxPages
	}
	return &Resolver{
		fetcher:         fetcher,
		log:             log,
		sitemapRequired: sitemapRequired,
		maxPages:        maxPages,
		crawlLimit:      maxCrawlPages,
	}
}

// Resolve returns the page URLs to analyze for root and whether they came from
// a sitemap. URLs on a different host than root are dropped; order is
// first-seen and the list is capped.
func (r *Resolver) Resolve(ctx context.Context, root *url.URL) ([]string, bool, error) {
	origin := root.Scheme + "://" + root.Host

	for _, path := range sitemapPaths {
		urls := r.fetchSitemap(ctx, origin+path, root.Host)
		if len(urls) > 0 {
			r.log.Infow("sitemap resolved", "path", path, "urls", len(urls))
			return urls, true, nil
		}
	}

	if r.sitemapRequired {
		return nil, false, newSitemapRequiredError(origin)
	}

	r.log.Infow("no sitemap found, crawling homepage", "root", origin)
	urls := r.crawlHomepage(ctx, root)
	if len(urls) == 0 {
		// The homepage itself is always analyzable.
		urls = []string{origin + "/"}
	}
	return urls, false, nil
}

// fetchSitemap fetches one sitemap and returns its page URLs. When the file is
// an index, the first maxNestedSitemaps children are followed and merged.
func (r *Resolver) fetchSitemap(ctx context.Context, sitemapURL, host string) []string {
	body := r.fetcher.FetchOptional(ctx, sitemapURL)
	if body == "" {
		return nil
	}

	var sm sitemapFile
	if err := xml.Unmarshal([]byte(body), &sm); err != nil {
		r.log.Debugw("sitemap parse failed", "url", sitemapURL, "error", err)
		return nil
	}

	seen := make(map[string]bool)
	var urls []string

	appendLocs := func(locs []sitemapLoc) {
		for _, loc := range locs {
			u := strings.TrimSpace(loc.Loc)
			if u == "" || seen[u] {
				continue
			}
			if !sameHost(u, host) {
				continue
			}
			seen[u] = true
			urls = append(urls, u)
			if len(urls) >= r.maxPages {
				return
			}
		}
	}

	if len(sm.Sitemaps) > 0 {
		nested := sm.Sitemaps
		if len(nested) > maxNestedSitemaps {
			nested = nested[:maxNestedSitemaps]
		}
		for _, child := range nested {
			childBody := r.fetcher.FetchOptional(ctx, strings.TrimSpace(child.Loc))
			if childBody == "" {
				continue
			}
			var childSM sitemapFile
			if err := xml.Unmarshal([]byte(childBody), &childSM); err != nil {
				continue
			}
			appendLocs(childSM.URLs)
			if len(urls) >= r.maxPages {
				break
			}
		}
		return urls
	}

	appendLocs(sm.URLs)
	return urls
}

// crawlHomepage fetches the homepage and collects same-origin anchor targets,
// stripping query and fragment and rejecting denylisted paths.
func (r *Resolver) crawlHomepage(ctx context.Context, root *url.URL) []string {
	origin := root.Scheme + "://" + root.Host
	home := origin + "/"

	body := r.fetcher.FetchOptional(ctx, home)
	if body == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	seen := map[string]bool{home: true}
	urls := []string{home}

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		resolved := root.ResolveReference(ref)
		if resolved.Host != root.Host {
			return true
		}
		resolved.RawQuery = ""
		resolved.Fragment = ""

		if deniedPath(resolved.Path) {
			return true
		}

		u := resolved.String()
		if seen[u] {
			return true
		}
		seen[u] = true
		urls = append(urls, u)
		return len(urls) < r.crawlLimit
	})

	return urls
}

func deniedPath(path string) bool {
	lower := strings.ToLower(path)
	for _, deny := range crawlDenylist {
		if strings.Contains(lower, deny) {
			return true
		}
	}
	return false
}

func sameHost(rawURL, host string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}
