package analyzer

import (
	"math"
	"sort"
)

const (
	// recoverablePoints is the fixed estimate of points a site can win back by
	// acting on its recommendations.
	recoverablePoints = 15
	// maxProblemPages caps the problem-page list.
	maxProblemPages = 5
)

// Score level cutpoints on the site average.
const (
	levelCriticalBelow = 30
	levelPoorBelow     = 50
	levelAverageBelow  = 70
)

// buildSummary computes site statistics over successfully analyzed pages only.
func buildSummary(pages []PageAnalysis) Summary {
	summary := Summary{}

	total := 0
	for _, p := range pages {
		if !p.Success {
			summary.PagesFailed++
			continue
		}
		summary.PagesAnalyzed++
		total += p.Score
		if summary.PagesAnalyzed == 1 || p.Score < summary.MinScore {
			summary.MinScore = p.Score
		}
		if p.Score > summary.MaxScore {
			summary.MaxScore = p.Score
		}
	}

	if summary.PagesAnalyzed > 0 {
		avg := float64(total) / float64(summary.PagesAnalyzed)
		summary.AverageScore = math.Round(avg*10) / 10
		summary.PotentialScore = clampScore(int(math.Round(avg))+recoverablePoints, 100)
	}
	summary.Level = scoreLevel(summary.AverageScore)
	return summary
}

func scoreLevel(average float64) string {
	switch {
	case average < levelCriticalBelow:
		return LevelCritical
	case average < levelPoorBelow:
		return LevelPoor
	case average < levelAverageBelow:
		return LevelAverage
	default:
		return LevelGood
	}
}

// problemPages returns successful pages scoring below threshold, ascending by
// score, capped.
func problemPages(pages []PageAnalysis, threshold int) []ProblemPage {
	var out []ProblemPage
	for _, p := range pages {
		if p.Success && p.Score < threshold {
			out = append(out, ProblemPage{URL: p.URL, Score: p.Score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	if len(out) > maxProblemPages {
		out = out[:maxProblemPages]
	}
	return out
}

// collectRecommendations deduplicates recommendations site-wide by action
// text, recording how many distinct pages raised each, in first-seen order.
func collectRecommendations(pages []PageAnalysis) []SiteRecommendation {
	index := make(map[string]int)
	var out []SiteRecommendation

	for _, p := range pages {
		if !p.Success {
			continue
		}
		for _, rec := range p.Recommendations {
			i, ok := index[rec.Action]
			if !ok {
				site := rec
				site.Page = "" // the Pages list carries provenance site-wide
				index[rec.Action] = len(out)
				out = append(out, SiteRecommendation{Recommendation: site})
				i = len(out) - 1
			}
			out[i].PageCount++
			out[i].Pages = append(out[i].Pages, p.URL)
		}
	}
	return out
}

// globalRecommendations filters the deduplicated set down to recommendations
// raised by at least half of the successfully analyzed pages.
func globalRecommendations(recs []SiteRecommendation, successCount int) []SiteRecommendation {
	if successCount == 0 {
		return nil
	}
	var out []SiteRecommendation
	for _, rec := range recs {
		if rec.PageCount*2 >= successCount {
			out = append(out, rec)
		}
	}
	return out
}
