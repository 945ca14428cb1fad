package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeRecommendationsMapping(t *testing.T) {
	recs := synthesizeRecommendations([]string{IssueMissingStructuredData, IssueMissingH1})

	require.Len(t, recs, 2)
	assert.Equal(t, CategoryStructuredData, recs[0].Category)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, IssueMissingStructuredData, recs[0].Issue)
	assert.Equal(t, CategoryMachineReadability, recs[1].Category)
}

func TestSynthesizeRecommendationsEveryIssueCodeIsMapped(t *testing.T) {
	// Every code a scorer can emit must resolve to exactly one recommendation.
	for code, rec := range recommendationTable {
		assert.Equal(t, code, rec.Issue)
		assert.NotEmpty(t, rec.Category)
		assert.NotEmpty(t, rec.Action)
		assert.Contains(t, []string{PriorityHigh, PriorityMedium, PriorityLow}, rec.Priority)
	}
}

func TestSynthesizeRecommendationsDeduplicatesByAction(t *testing.T) {
	recs := synthesizeRecommendations([]string{IssueMissingH1, IssueMissingH1, IssueMissingH1})
	assert.Len(t, recs, 1)
}

func TestSynthesizeRecommendationsFallbackNeverEmpty(t *testing.T) {
	recs := synthesizeRecommendations(nil)
	require.NotEmpty(t, recs)
	for _, rec := range recs {
		assert.Equal(t, PriorityLow, rec.Priority)
	}

	// Unknown codes alone also fall back rather than returning empty.
	recs = synthesizeRecommendations([]string{"some-unknown-code"})
	assert.NotEmpty(t, recs)
}

func TestSynthesizeRecommendationsIdempotent(t *testing.T) {
	issues := []string{IssueMissingStructuredData, IssueMissingOpenGraph, IssueMissingLLMSTxt}
	first := synthesizeRecommendations(issues)
	second := synthesizeRecommendations(issues)
	assert.Equal(t, first, second)
}
