package analyzer

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Entity types that carry extra weight: the ones answer engines are most
// likely to cite directly.
var importantEntityTypes = map[string]bool{
	"Organization":   true,
	"LocalBusiness":  true,
	"Person":         true,
	"Service":        true,
	"Product":        true,
	"FAQPage":        true,
	"HowTo":          true,
	"Article":        true,
	"WebPage":        true,
	"BreadcrumbList": true,
}

// Social preview metadata families.
var openGraphFields = []string{"og:title", "og:description", "og:image", "og:url", "og:type"}
var twitterCardFields = []string{"twitter:card", "twitter:title", "twitter:description", "twitter:image"}

// scoreStructuredData rates the page's machine-readable metadata: JSON-LD
// blocks and their entity types, plus the two social preview families.
func scoreStructuredData(doc *goquery.Document) (StructuredDataResult, []string) {
	var issues []string
	details := StructuredDataDetails{}
	score := 0

	entityTypes := make(map[string]bool)
	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		details.BlockCount++

		var block any
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			// Parse failure is scoped to this block, not fatal.
			details.InvalidBlocks++
			return
		}
		collectEntityTypes(block, entityTypes)
		if hasSchemaContext(block) {
			details.ValidContext = true
		}
	})

	if details.BlockCount > 0 {
		score += 6
	} else {
		issues = append(issues, IssueMissingStructuredData)
	}
	if details.InvalidBlocks > 0 {
		score -= 2 * details.InvalidBlocks
		issues = append(issues, IssueInvalidJSONLD)
	}
	if details.ValidContext {
		score += 3
	}

	details.EntityTypes = make([]string, 0, len(entityTypes))
	for t := range entityTypes {
		details.EntityTypes = append(details.EntityTypes, t)
		if importantEntityTypes[t] {
			details.HasImportantType = true
		}
	}
	sort.Strings(details.EntityTypes)

	score += min(len(details.EntityTypes), 4)
	if details.HasImportantType {
		score += 2
	} else if details.BlockCount > details.InvalidBlocks {
		issues = append(issues, IssueNoImportantTypes)
	}

	// Social preview families, each scored by its fraction of fields present.
	details.OpenGraphFields = countMetaProperties(doc, openGraphFields)
	score += int(math.Round(5 * float64(details.OpenGraphFields) / float64(len(openGraphFields))))
	if details.OpenGraphFields == 0 {
		issues = append(issues, IssueMissingOpenGraph)
	}

	details.TwitterCardFields = countMetaProperties(doc, twitterCardFields)
	score += int(math.Round(4 * float64(details.TwitterCardFields) / float64(len(twitterCardFields))))
	if details.TwitterCardFields == 0 {
		issues = append(issues, IssueMissingTwitterCard)
	}

	return StructuredDataResult{
		CategoryScore: CategoryScore{Score: clampScore(score, CategoryMax), Max: CategoryMax},
		Details:       details,
	}, issues
}

// collectEntityTypes walks a decoded JSON-LD value and records every @type it
// finds, including entries nested under @graph.
func collectEntityTypes(block any, types map[string]bool) {
	switch v := block.(type) {
	case []any:
		for _, item := range v {
			collectEntityTypes(item, types)
		}
	case map[string]any:
		switch t := v["@type"].(type) {
		case string:
			types[t] = true
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					types[s] = true
				}
			}
		}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				collectEntityTypes(item, types)
			}
		}
	}
}

func hasSchemaContext(block any) bool {
	switch v := block.(type) {
	case []any:
		for _, item := range v {
			if hasSchemaContext(item) {
				return true
			}
		}
	case map[string]any:
		if ctx, ok := v["@context"].(string); ok {
			return strings.Contains(ctx, "schema.org")
		}
	}
	return false
}

// countMetaProperties counts how many of the named meta properties are present
// with non-empty content, matching either property= or name= attributes.
func countMetaProperties(doc *goquery.Document, names []string) int {
	count := 0
	for _, name := range names {
		sel := doc.Find("meta[property='" + name + "'], meta[name='" + name + "']")
		found := false
		sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if content, ok := s.Attr("content"); ok && strings.TrimSpace(content) != "" {
				found = true
				return false
			}
			return true
		})
		if found {
			count++
		}
	}
	return count
}
