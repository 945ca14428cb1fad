package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Meta description window that earns full credit.
const (
	descriptionIdealMin = 120
	descriptionIdealMax = 160
)

// FAQ markup styles recorded in the details.
const (
	faqSemantic   = "semantic"
	faqStructured = "structured"
	faqHeuristic  = "heuristic"
	faqNone       = "none"
)

// scoreExtractionFormat rates how easily an answer engine can lift content
// from the page: description length, canonical URL, FAQ markup, step lists,
// definition lists, cited quotes and table header structure.
func scoreExtractionFormat(doc *goquery.Document) (ExtractionFormatResult, []string) {
	var issues []string
	details := ExtractionFormatDetails{}
	score := 0

	// Meta description with graceful partial credit outside the ideal window.
	description, _ := doc.Find("meta[name='description']").Attr("content")
	details.DescriptionLength = len(strings.TrimSpace(description))
	switch {
	case details.DescriptionLength == 0:
		issues = append(issues, IssueMissingDescription)
	case details.DescriptionLength >= descriptionIdealMin && details.DescriptionLength <= descriptionIdealMax:
		score += 8
	case details.DescriptionLength >= 50 && details.DescriptionLength <= 220:
		score += 4
		issues = append(issues, IssueDescriptionLength)
	default:
		score += 2
		issues = append(issues, IssueDescriptionLength)
	}

	// Canonical URL declaration.
	canonical, _ := doc.Find("link[rel='canonical']").Attr("href")
	details.HasCanonical = strings.TrimSpace(canonical) != ""
	if details.HasCanonical {
		score += 3
	} else {
		issues = append(issues, IssueMissingCanonical)
	}

	// FAQ structure: native disclosure widgets or FAQPage structured data get
	// full credit; a class/id naming heuristic gets partial credit.
	details.FAQStyle = detectFAQStyle(doc)
	switch details.FAQStyle {
	case faqSemantic, faqStructured:
		score += 8
	case faqHeuristic:
		score += 4
		issues = append(issues, IssueFAQNotSemantic)
	}

	// Ordered lists with enough items to read as step content.
	doc.Find("ol").Each(func(_ int, s *goquery.Selection) {
		if s.Find("li").Length() >= 3 {
			details.OrderedListCount++
		}
	})
	if details.OrderedListCount > 0 {
		score += 2
	}

	// Definition lists with complete term/definition pairs.
	doc.Find("dl").Each(func(_ int, s *goquery.Selection) {
		dt := s.Find("dt").Length()
		dd := s.Find("dd").Length()
		if dt > 0 && dt == dd {
			details.DefinitionListCount++
		}
	})
	if details.DefinitionListCount > 0 {
		score += 2
	}

	// Blockquotes that cite their source.
	doc.Find("blockquote").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("cite"); ok || s.Find("cite").Length() > 0 {
			details.CitedBlockquotes++
		}
	})
	if details.CitedBlockquotes > 0 {
		score++
	}

	// Tables with header structure.
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		details.TableCount++
		if s.Find("thead").Length() > 0 || s.Find("th").Length() > 0 {
			details.TablesWithHeaders++
		}
	})
	if details.TableCount > 0 {
		if details.TablesWithHeaders == details.TableCount {
			score++
		} else {
			issues = append(issues, IssueTablesMissingHeaders)
		}
	}

	return ExtractionFormatResult{
		CategoryScore: CategoryScore{Score: clampScore(score, CategoryMax), Max: CategoryMax},
		Details:       details,
	}, issues
}

func detectFAQStyle(doc *goquery.Document) string {
	if doc.Find("details summary").Length() > 0 {
		return faqSemantic
	}

	structured := false
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), "FAQPage") {
			structured = true
			return false
		}
		return true
	})
	if structured {
		return faqStructured
	}

	heuristic := false
	doc.Find("[class],[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		needle := strings.ToLower(class + " " + id)
		if strings.Contains(needle, "faq") || strings.Contains(needle, "accordion") {
			heuristic = true
			return false
		}
		return true
	})
	if heuristic {
		return faqHeuristic
	}
	return faqNone
}
