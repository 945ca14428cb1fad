package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteRec(priority, action string) SiteRecommendation {
	return SiteRecommendation{
		Recommendation: Recommendation{Category: CategoryStructuredData, Priority: priority, Action: action},
		PageCount:      1,
	}
}

func TestBuildActionPlanCriticalRegime(t *testing.T) {
	recs := []SiteRecommendation{
		siteRec(PriorityHigh, "Add structured data (JSON-LD) describing the page's main entities"),
		siteRec(PriorityMedium, "Declare a canonical URL so crawlers pick one address per page"),
	}

	plan := buildActionPlan(recs, 25)

	require.Len(t, plan.Critical, 1)
	assert.Equal(t, TierCritical, plan.Critical[0].Tier)
	assert.Contains(t, plan.Critical[0].Action, "structured data")
	require.Len(t, plan.Important, 1)
	assert.Empty(t, plan.Improvements)
}

func TestBuildActionPlanPoorRegime(t *testing.T) {
	recs := []SiteRecommendation{
		siteRec(PriorityHigh, "Add structured data (JSON-LD) describing the page's main entities"),
		siteRec(PriorityLow, "Add alt text to all images"),
	}

	plan := buildActionPlan(recs, 40)

	assert.Empty(t, plan.Critical)
	require.Len(t, plan.Important, 1)
	assert.Equal(t, TierImportant, plan.Important[0].Tier)
	require.Len(t, plan.Improvements, 1)
}

func TestBuildActionPlanHealthyRegime(t *testing.T) {
	recs := []SiteRecommendation{
		siteRec(PriorityHigh, "Add structured data (JSON-LD) describing the page's main entities"),
		siteRec(PriorityMedium, "Add alt text to all images"),
	}

	plan := buildActionPlan(recs, 75)

	assert.Empty(t, plan.Critical)
	assert.Empty(t, plan.Important)
	assert.Len(t, plan.Improvements, 2)
}

func TestBuildActionPlanEmptyIsValid(t *testing.T) {
	plan := buildActionPlan(nil, 90)
	assert.Empty(t, plan.Critical)
	assert.Empty(t, plan.Important)
	assert.Empty(t, plan.Improvements)
}

func TestBuildActionPlanTiersSortedByImpactAndCapped(t *testing.T) {
	var recs []SiteRecommendation
	recs = append(recs, siteRec(PriorityHigh, "Add alt text to all images"))                                        // impact 1
	recs = append(recs, siteRec(PriorityHigh, "Add structured data (JSON-LD) describing the page's main entities")) // impact 3
	for i := 0; i < 6; i++ {
		recs = append(recs, siteRec(PriorityHigh, fmt.Sprintf("Declare a canonical URL variant %d", i))) // impact 2
	}

	plan := buildActionPlan(recs, 10)

	require.Len(t, plan.Critical, maxTierItems)
	assert.Equal(t, 3, plan.Critical[0].Impact)
	for i := 1; i < len(plan.Critical); i++ {
		assert.GreaterOrEqual(t, plan.Critical[i-1].Impact, plan.Critical[i].Impact)
	}
}

func TestEstimateEffort(t *testing.T) {
	tests := []struct {
		action string
		impact int
	}{
		{"Add structured data (JSON-LD) describing the page's main entities", 3},
		{"Serve pre-rendered HTML, the page appears to render its content with JavaScript only", 3},
		{"Allow AI crawlers in robots.txt or scope disallow rules to private paths only", 3},
		{"Publish an llms.txt file with guidance for AI crawlers", 2},
		{"Write a meta description of 120-160 characters summarizing the page", 2},
		{"Add alt text to all images", 1},
	}
	for _, tc := range tests {
		effort, impact := estimateEffort(tc.action)
		assert.Equal(t, tc.impact, impact, tc.action)
		assert.NotEmpty(t, effort)
	}
}
