package analyzer

import (
	"math"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/temoto/robotstxt"
)

// AI crawler agents checked against the crawl policy.
var aiAgents = []string{
	"GPTBot",
	"ChatGPT-User",
	"ClaudeBot",
	"Claude-Web",
	"PerplexityBot",
	"Google-Extended",
	"CCBot",
	"Bytespider",
}

// Client-side-rendering heuristics.
const (
	csrTextFloor   = 200  // chars of extracted text below which a page is "thin"
	csrRatioFloor  = 0.1  // text-to-markup ratio considered script-dominated
	csrScriptCount = 10   // script tags above which the ratio check applies
)

// App shell container ids used by common client-rendered frameworks.
var appRootIDs = []string{"root", "app", "__next", "___gatsby"}

// Latency tiers modeling crawler timeout risk.
const (
	slowThresholdMs     = 3000
	verySlowThresholdMs = 5000
)

// scoreBotAccessibility rates whether AI crawlers are permitted to fetch the
// page and get usable content when they do: crawl policy per agent, llms.txt
// presence, indexability directives, server-rendered text and image alt
// coverage, with latency penalties on top.
func scoreBotAccessibility(doc *goquery.Document, rawHTML, pageURL string, art Artifacts, robotsTag string, fetchMs int) (BotAccessibilityResult, []string) {
	var issues []string
	details := BotAccessibilityDetails{FetchTimeMs: fetchMs}
	score := 0

	// Per-agent crawl policy. An agent resolves to its own policy section when
	// one exists, otherwise the wildcard section; it is blocked only when the
	// resolved section denies the root path. Absent policy is allowed but
	// flagged, not full credit.
	if art.Robots == "" {
		score += 7
		issues = append(issues, IssueMissingRobots)
	} else if robots, err := robotstxt.FromString(art.Robots); err != nil {
		score += 7
		issues = append(issues, IssueMissingRobots)
	} else {
		details.RobotsFound = true
		for _, agent := range aiAgents {
			group := robots.FindGroup(agent)
			if group != nil && !group.Test("/") {
				details.BlockedAgents = append(details.BlockedAgents, agent)
			}
		}
		allowed := len(aiAgents) - len(details.BlockedAgents)
		score += int(math.Round(10 * float64(allowed) / float64(len(aiAgents))))
		if len(details.BlockedAgents) > 0 {
			issues = append(issues, IssueAgentsBlocked)
		}
	}

	// AI guidance artifact.
	if looksLikeAIGuidance(art.LLMSTxt) {
		details.LLMSTxtFound = true
		score += 4
	} else {
		issues = append(issues, IssueMissingLLMSTxt)
	}

	// Server-rendered text health.
	details.TextLength = extractedTextLength(doc, rawHTML, pageURL)
	if len(rawHTML) > 0 {
		details.TextRatio = float64(details.TextLength) / float64(len(rawHTML))
	}
	details.ScriptCount = doc.Find("script").Length()

	textHealth := 5
	if details.TextLength < csrTextFloor {
		if hasAppRoot(doc) {
			details.LikelyCSR = true
			issues = append(issues, IssueLikelyCSR)
		} else {
			textHealth = 2
			issues = append(issues, IssueThinContent)
		}
	} else if details.TextRatio < csrRatioFloor && details.ScriptCount > csrScriptCount {
		textHealth -= 3
		issues = append(issues, IssueScriptHeavy)
	}
	score += textHealth

	// Image alternative-text coverage; no images means full credit.
	images := doc.Find("img")
	details.TotalImages = images.Length()
	images.Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			details.ImagesWithAlt++
		}
	})
	if details.TotalImages == 0 {
		score += 6
	} else {
		score += int(math.Round(6 * float64(details.ImagesWithAlt) / float64(details.TotalImages)))
		if details.ImagesWithAlt < details.TotalImages {
			issues = append(issues, IssueImagesMissingAlt)
		}
	}

	// Page-level indexability directives, meta or header-equivalent.
	directives := robotsDirectives(doc, robotsTag)
	if strings.Contains(directives, "noindex") {
		details.Noindex = true
		score -= 8
		issues = append(issues, IssueNoindex)
	}
	if strings.Contains(directives, "nofollow") {
		details.Nofollow = true
		issues = append(issues, IssueNofollow)
	}

	// Latency penalties modeling crawler timeout risk.
	switch {
	case fetchMs > verySlowThresholdMs:
		score -= 6
		issues = append(issues, IssueVerySlowResponse)
	case fetchMs > slowThresholdMs:
		score -= 3
		issues = append(issues, IssueSlowResponse)
	}

	// An app shell with no server-rendered text is unreadable regardless of
	// everything else.
	if details.LikelyCSR {
		score = 0
	}

	return BotAccessibilityResult{
		CategoryScore: CategoryScore{Score: clampScore(score, CategoryMax), Max: CategoryMax},
		Details:       details,
	}, issues
}

// extractedTextLength measures the main-content text a crawler would get
// without executing scripts. Readability extraction is preferred; the body
// text is the fallback.
func extractedTextLength(doc *goquery.Document, rawHTML, pageURL string) int {
	if parsed, err := url.Parse(pageURL); err == nil {
		if article, err := readability.FromReader(strings.NewReader(rawHTML), parsed); err == nil {
			if n := len(strings.TrimSpace(article.TextContent)); n > 0 {
				return n
			}
		}
	}
	return len(strings.Join(strings.Fields(doc.Find("body").Text()), " "))
}

func hasAppRoot(doc *goquery.Document) bool {
	for _, id := range appRootIDs {
		if doc.Find("#" + id).Length() > 0 {
			return true
		}
	}
	return false
}

// robotsDirectives merges the meta robots content with the header-equivalent
// X-Robots-Tag value, lowercased.
func robotsDirectives(doc *goquery.Document, robotsTag string) string {
	meta, _ := doc.Find("meta[name='robots']").Attr("content")
	return strings.ToLower(meta) + " " + robotsTag
}

// looksLikeAIGuidance filters out soft-404 HTML bodies served at the llms.txt
// path; real guidance files are short markdown-ish text.
func looksLikeAIGuidance(body string) bool {
	if strings.TrimSpace(body) == "" {
		return false
	}
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype") {
		return false
	}
	return len(body) < 100000
}
