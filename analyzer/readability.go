package analyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Semantic tag vocabulary checked for presence.
var semanticVocabulary = []string{
	"article", "section", "aside", "nav", "header", "footer", "main", "details",
}

// Implicit landmark roles carried by semantic tags.
var implicitLandmarks = map[string]string{
	"nav":    "navigation",
	"main":   "main",
	"header": "banner",
	"footer": "contentinfo",
	"aside":  "complementary",
}

var explicitLandmarkRoles = map[string]bool{
	"banner":        true,
	"navigation":    true,
	"main":          true,
	"contentinfo":   true,
	"complementary": true,
	"search":        true,
	"region":        true,
}

// scoreMachineReadability rates how much of the page's structure is expressed
// in markup a parser can rely on: semantic containers, a sound heading
// hierarchy, a declared language and navigational landmarks.
func scoreMachineReadability(doc *goquery.Document) (MachineReadabilityResult, []string) {
	var issues []string
	details := MachineReadabilityDetails{}
	score := 0

	// Semantic tag coverage, one point per vocabulary tag present.
	semanticCount := 0
	for _, tag := range semanticVocabulary {
		n := doc.Find(tag).Length()
		if n > 0 {
			details.SemanticTags = append(details.SemanticTags, tag)
			semanticCount += n
		}
	}
	score += len(details.SemanticTags)
	if len(details.SemanticTags) <= 2 {
		issues = append(issues, IssueLowSemanticHTML)
	}

	// Exactly one top-level heading gets full credit.
	details.H1Count = doc.Find("h1").Length()
	switch {
	case details.H1Count == 1:
		score += 5
	case details.H1Count == 0:
		issues = append(issues, IssueMissingH1)
	default:
		score += 2
		issues = append(issues, IssueMultipleH1)
	}

	// A non-empty second-level heading.
	doc.Find("h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != "" {
			details.HasH2 = true
			return false
		}
		return true
	})
	if details.HasH2 {
		score += 3
	} else {
		issues = append(issues, IssueMissingH2)
	}

	// A level N heading requires at least one level N-1 heading present.
	counts := [7]int{}
	for level := 1; level <= 6; level++ {
		counts[level] = doc.Find("h" + strconv.Itoa(level)).Length()
	}
	for level := 2; level <= 6; level++ {
		if counts[level] > 0 && counts[level-1] == 0 {
			details.HeadingSkip = true
			break
		}
	}
	if details.HeadingSkip {
		issues = append(issues, IssueHeadingSkip)
	} else {
		score += 3
	}

	// Semantic containers versus generic div/span soup.
	genericCount := doc.Find("div").Length() + doc.Find("span").Length()
	if genericCount == 0 {
		details.SemanticRatio = 1
	} else {
		details.SemanticRatio = float64(semanticCount) / float64(genericCount)
	}
	score += int(math.Round(3 * math.Min(details.SemanticRatio/0.2, 1)))
	if details.SemanticRatio < 0.05 {
		issues = append(issues, IssueGenericContainers)
	}

	// Declared document language.
	details.Language, _ = doc.Find("html").Attr("lang")
	if strings.TrimSpace(details.Language) != "" {
		score += 2
	} else {
		issues = append(issues, IssueMissingLang)
	}

	// Distinct landmarks, explicit roles or implicit semantic equivalents.
	landmarks := map[string]bool{}
	doc.Find("[role]").Each(func(_ int, s *goquery.Selection) {
		role, _ := s.Attr("role")
		role = strings.ToLower(strings.TrimSpace(role))
		if explicitLandmarkRoles[role] {
			landmarks[role] = true
		}
	})
	for tag, role := range implicitLandmarks {
		if doc.Find(tag).Length() > 0 {
			landmarks[role] = true
		}
	}
	details.LandmarkCount = len(landmarks)
	score += min(details.LandmarkCount, 3)
	if details.LandmarkCount < 2 {
		issues = append(issues, IssueFewLandmarks)
	}

	return MachineReadabilityResult{
		CategoryScore: CategoryScore{Score: clampScore(score, CategoryMax), Max: CategoryMax},
		Details:       details,
	}, issues
}
