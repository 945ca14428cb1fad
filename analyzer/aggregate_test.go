package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successfulPage(url string, score int, recs ...Recommendation) PageAnalysis {
	return PageAnalysis{URL: url, Success: true, Score: score, Recommendations: recs}
}

func TestBuildSummary(t *testing.T) {
	pages := []PageAnalysis{
		successfulPage("https://a.example/1", 40),
		successfulPage("https://a.example/2", 60),
		{URL: "https://a.example/3", Success: false},
	}

	summary := buildSummary(pages)

	assert.Equal(t, 2, summary.PagesAnalyzed)
	assert.Equal(t, 1, summary.PagesFailed)
	assert.InDelta(t, 50.0, summary.AverageScore, 0.01)
	assert.Equal(t, 40, summary.MinScore)
	assert.Equal(t, 60, summary.MaxScore)
	assert.Equal(t, 65, summary.PotentialScore)
	assert.Equal(t, LevelAverage, summary.Level)
}

func TestBuildSummaryNoSuccessfulPages(t *testing.T) {
	summary := buildSummary([]PageAnalysis{{URL: "https://a.example", Success: false}})

	assert.Zero(t, summary.AverageScore)
	assert.Equal(t, LevelCritical, summary.Level)
	assert.Zero(t, summary.PotentialScore)
}

func TestBuildSummaryPotentialClamped(t *testing.T) {
	summary := buildSummary([]PageAnalysis{successfulPage("https://a.example", 95)})
	assert.Equal(t, 100, summary.PotentialScore)
}

func TestScoreLevelCutpoints(t *testing.T) {
	assert.Equal(t, LevelCritical, scoreLevel(29.9))
	assert.Equal(t, LevelPoor, scoreLevel(30))
	assert.Equal(t, LevelPoor, scoreLevel(49.9))
	assert.Equal(t, LevelAverage, scoreLevel(50))
	assert.Equal(t, LevelGood, scoreLevel(70))
}

func TestProblemPagesSortedAndCapped(t *testing.T) {
	var pages []PageAnalysis
	for i := 0; i < 8; i++ {
		pages = append(pages, successfulPage(fmt.Sprintf("https://a.example/%d", i), 60-i))
	}
	pages = append(pages, successfulPage("https://a.example/fine", 90))
	pages = append(pages, PageAnalysis{URL: "https://a.example/broken", Success: false})

	problems := problemPages(pages, 70)

	require.Len(t, problems, maxProblemPages)
	for i := 1; i < len(problems); i++ {
		assert.LessOrEqual(t, problems[i-1].Score, problems[i].Score)
	}
	// Failed pages never appear as problem pages.
	for _, p := range problems {
		assert.NotEqual(t, "https://a.example/broken", p.URL)
	}
}

func TestCollectRecommendationsCountsDistinctPages(t *testing.T) {
	shared := Recommendation{Category: CategoryStructuredData, Priority: PriorityHigh, Issue: IssueMissingStructuredData, Action: "Add structured data (JSON-LD) describing the page's main entities"}

	var pages []PageAnalysis
	for i := 0; i < 3; i++ {
		rec := shared
		rec.Page = fmt.Sprintf("https://a.example/%d", i)
		pages = append(pages, successfulPage(rec.Page, 50, rec))
	}

	deduped := collectRecommendations(pages)

	require.Len(t, deduped, 1)
	assert.Equal(t, 3, deduped[0].PageCount)
	assert.Len(t, deduped[0].Pages, 3)
	assert.Empty(t, deduped[0].Page)
}

func TestGlobalRecommendationsThreshold(t *testing.T) {
	recs := []SiteRecommendation{
		{Recommendation: Recommendation{Action: "everywhere"}, PageCount: 3},
		{Recommendation: Recommendation{Action: "half"}, PageCount: 2},
		{Recommendation: Recommendation{Action: "rare"}, PageCount: 1},
	}

	global := globalRecommendations(recs, 4)

	require.Len(t, global, 2)
	assert.Equal(t, "everywhere", global[0].Action)
	assert.Equal(t, "half", global[1].Action)
}

func TestGlobalRecommendationsNoSuccesses(t *testing.T) {
	assert.Empty(t, globalRecommendations([]SiteRecommendation{{PageCount: 1}}, 0))
}
