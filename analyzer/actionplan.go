package analyzer

import (
	"sort"
	"strings"
)

// maxTierItems caps each urgency tier.
const maxTierItems = 5

// effortRule estimates effort and impact from keywords in the action text.
// First match wins.
type effortRule struct {
	keywords []string
	effort   string
	impact   int
}

var effortRules = []effortRule{
	{[]string{"pre-rendered", "javascript"}, "4-8 hours", 3},
	{[]string{"structured data", "json-ld"}, "2-4 hours", 3},
	{[]string{"semantic", "hierarchy", "containers", "rebuild"}, "2-4 hours", 3},
	{[]string{"robots.txt", "ai crawlers in"}, "30-60 minutes", 3},
	{[]string{"llms.txt"}, "30-60 minutes", 2},
	{[]string{"meta description", "canonical", "noindex", "nofollow"}, "15-30 minutes", 2},
	{[]string{"alt text", "language", "open graph", "twitter", "thead"}, "15-30 minutes", 1},
}

func estimateEffort(action string) (string, int) {
	lower := strings.ToLower(action)
	for _, rule := range effortRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.effort, rule.impact
			}
		}
	}
	return "1-2 hours", 2
}

// buildActionPlan buckets the deduplicated recommendation set into urgency
// tiers conditioned on the site average. Tiers are mutually exclusive, sorted
// by impact descending and capped. A high-scoring site can legitimately end up
// with everything in Improvements, or nothing at all.
func buildActionPlan(recs []SiteRecommendation, average float64) ActionPlan {
	plan := ActionPlan{}

	for _, rec := range recs {
		effort, impact := estimateEffort(rec.Action)
		item := ActionItem{Recommendation: rec.Recommendation, Effort: effort, Impact: impact}

		switch {
		case average < levelCriticalBelow:
			if rec.Priority == PriorityHigh {
				item.Tier = TierCritical
				plan.Critical = append(plan.Critical, item)
			} else {
				item.Tier = TierImportant
				plan.Important = append(plan.Important, item)
			}
		case average < levelPoorBelow:
			if rec.Priority == PriorityHigh {
				item.Tier = TierImportant
				plan.Important = append(plan.Important, item)
			} else {
				item.Tier = TierImprovement
				plan.Improvements = append(plan.Improvements, item)
			}
		default:
			item.Tier = TierImprovement
			plan.Improvements = append(plan.Improvements, item)
		}
	}

	plan.Critical = sortAndCapTier(plan.Critical)
	plan.Important = sortAndCapTier(plan.Important)
	plan.Improvements = sortAndCapTier(plan.Improvements)
	return plan
}

func sortAndCapTier(items []ActionItem) []ActionItem {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Impact > items[j].Impact })
	if len(items) > maxTierItems {
		items = items[:maxTierItems]
	}
	return items
}
