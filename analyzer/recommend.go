package analyzer

// Issue codes emitted by the category scorers. Each maps to exactly one
// recommendation in recommendationTable.
const (
	IssueLowSemanticHTML   = "low-semantic-html"
	IssueMissingH1         = "missing-h1"
	IssueMultipleH1        = "multiple-h1"
	IssueMissingH2         = "missing-h2"
	IssueHeadingSkip       = "heading-level-skip"
	IssueGenericContainers = "generic-container-soup"
	IssueMissingLang       = "missing-lang-attribute"
	IssueFewLandmarks      = "few-landmarks"

	IssueMissingStructuredData = "missing-structured-data"
	IssueInvalidJSONLD         = "invalid-json-ld"
	IssueNoImportantTypes      = "no-important-entity-types"
	IssueMissingOpenGraph      = "missing-open-graph"
	IssueMissingTwitterCard    = "missing-twitter-card"

	IssueMissingDescription   = "missing-meta-description"
	IssueDescriptionLength    = "meta-description-length"
	IssueMissingCanonical     = "missing-canonical"
	IssueFAQNotSemantic       = "faq-markup-not-semantic"
	IssueTablesMissingHeaders = "tables-missing-headers"

	IssueAgentsBlocked    = "ai-agents-blocked"
	IssueMissingRobots    = "missing-robots-txt"
	IssueMissingLLMSTxt   = "missing-llms-txt"
	IssueNoindex          = "noindex-directive"
	IssueNofollow         = "nofollow-directive"
	IssueLikelyCSR        = "client-side-rendering"
	IssueThinContent      = "thin-text-content"
	IssueScriptHeavy      = "script-heavy-page"
	IssueImagesMissingAlt = "images-missing-alt"
	IssueSlowResponse     = "slow-response"
	IssueVerySlowResponse = "very-slow-response"
)

// recommendationTable maps every issue code to its remediation. The mapping is
// fixed and deterministic; recommendation identity is the action text.
var recommendationTable = map[string]Recommendation{
	IssueLowSemanticHTML: {
		Category: CategoryMachineReadability, Priority: PriorityHigh, Issue: IssueLowSemanticHTML,
		Action: "Replace generic containers with semantic HTML elements such as article, section and nav",
	},
	IssueMissingH1: {
		Category: CategoryMachineReadability, Priority: PriorityHigh, Issue: IssueMissingH1,
		Action: "Add a single h1 heading that states the page's main topic",
	},
	IssueMultipleH1: {
		Category: CategoryMachineReadability, Priority: PriorityMedium, Issue: IssueMultipleH1,
		Action: "Use exactly one h1 per page and demote the extra ones",
	},
	IssueMissingH2: {
		Category: CategoryMachineReadability, Priority: PriorityLow, Issue: IssueMissingH2,
		Action: "Break the content into sections with descriptive h2 headings",
	},
	IssueHeadingSkip: {
		Category: CategoryMachineReadability, Priority: PriorityMedium, Issue: IssueHeadingSkip,
		Action: "Fix the heading hierarchy so no heading level is skipped",
	},
	IssueGenericContainers: {
		Category: CategoryMachineReadability, Priority: PriorityMedium, Issue: IssueGenericContainers,
		Action: "Reduce div and span nesting in favor of semantic containers",
	},
	IssueMissingLang: {
		Category: CategoryMachineReadability, Priority: PriorityLow, Issue: IssueMissingLang,
		Action: "Declare the document language on the html element",
	},
	IssueFewLandmarks: {
		Category: CategoryMachineReadability, Priority: PriorityLow, Issue: IssueFewLandmarks,
		Action: "Add landmarks for navigation and main content, either roles or their semantic elements",
	},

	IssueMissingStructuredData: {
		Category: CategoryStructuredData, Priority: PriorityHigh, Issue: IssueMissingStructuredData,
		Action: "Add structured data (JSON-LD) describing the page's main entities",
	},
	IssueInvalidJSONLD: {
		Category: CategoryStructuredData, Priority: PriorityHigh, Issue: IssueInvalidJSONLD,
		Action: "Fix the structured data blocks that fail to parse",
	},
	IssueNoImportantTypes: {
		Category: CategoryStructuredData, Priority: PriorityMedium, Issue: IssueNoImportantTypes,
		Action: "Describe core entities such as Organization, Product or Article in structured data",
	},
	IssueMissingOpenGraph: {
		Category: CategoryStructuredData, Priority: PriorityMedium, Issue: IssueMissingOpenGraph,
		Action: "Add Open Graph metadata so shared links render a preview",
	},
	IssueMissingTwitterCard: {
		Category: CategoryStructuredData, Priority: PriorityLow, Issue: IssueMissingTwitterCard,
		Action: "Add Twitter Card metadata for the second preview family",
	},

	IssueMissingDescription: {
		Category: CategoryExtractionFormat, Priority: PriorityHigh, Issue: IssueMissingDescription,
		Action: "Write a meta description of 120-160 characters summarizing the page",
	},
	IssueDescriptionLength: {
		Category: CategoryExtractionFormat, Priority: PriorityMedium, Issue: IssueDescriptionLength,
		Action: "Adjust the meta description toward the 120-160 character window",
	},
	IssueMissingCanonical: {
		Category: CategoryExtractionFormat, Priority: PriorityMedium, Issue: IssueMissingCanonical,
		Action: "Declare a canonical URL so crawlers pick one address per page",
	},
	IssueFAQNotSemantic: {
		Category: CategoryExtractionFormat, Priority: PriorityMedium, Issue: IssueFAQNotSemantic,
		Action: "Rebuild FAQ content with details/summary elements or FAQPage structured data",
	},
	IssueTablesMissingHeaders: {
		Category: CategoryExtractionFormat, Priority: PriorityLow, Issue: IssueTablesMissingHeaders,
		Action: "Add thead and th header structure to data tables",
	},

	IssueAgentsBlocked: {
		Category: CategoryBotAccessibility, Priority: PriorityHigh, Issue: IssueAgentsBlocked,
		Action: "Allow AI crawlers in robots.txt or scope disallow rules to private paths only",
	},
	IssueMissingRobots: {
		Category: CategoryBotAccessibility, Priority: PriorityMedium, Issue: IssueMissingRobots,
		Action: "Publish a robots.txt so crawlers get explicit permissions instead of guessing",
	},
	IssueMissingLLMSTxt: {
		Category: CategoryBotAccessibility, Priority: PriorityMedium, Issue: IssueMissingLLMSTxt,
		Action: "Publish an llms.txt file with guidance for AI crawlers",
	},
	IssueNoindex: {
		Category: CategoryBotAccessibility, Priority: PriorityHigh, Issue: IssueNoindex,
		Action: "Remove the noindex directive if the page should be discoverable",
	},
	IssueNofollow: {
		Category: CategoryBotAccessibility, Priority: PriorityLow, Issue: IssueNofollow,
		Action: "Review the nofollow directive, it hides linked pages from crawlers",
	},
	IssueLikelyCSR: {
		Category: CategoryBotAccessibility, Priority: PriorityHigh, Issue: IssueLikelyCSR,
		Action: "Serve pre-rendered HTML, the page appears to render its content with JavaScript only",
	},
	IssueThinContent: {
		Category: CategoryBotAccessibility, Priority: PriorityMedium, Issue: IssueThinContent,
		Action: "Increase the amount of text served directly in the HTML",
	},
	IssueScriptHeavy: {
		Category: CategoryBotAccessibility, Priority: PriorityMedium, Issue: IssueScriptHeavy,
		Action: "Reduce script weight relative to content so crawlers find text, not code",
	},
	IssueImagesMissingAlt: {
		Category: CategoryBotAccessibility, Priority: PriorityLow, Issue: IssueImagesMissingAlt,
		Action: "Add alt text to all images",
	},
	IssueSlowResponse: {
		Category: CategoryBotAccessibility, Priority: PriorityMedium, Issue: IssueSlowResponse,
		Action: "Bring server response time under 3 seconds",
	},
	IssueVerySlowResponse: {
		Category: CategoryBotAccessibility, Priority: PriorityHigh, Issue: IssueVerySlowResponse,
		Action: "Bring server response time under 5 seconds, crawlers are likely timing out",
	},
}

// fallbackRecommendations are returned when a successfully scored page raised
// no issues at all; the list for a scored page is never empty.
var fallbackRecommendations = []Recommendation{
	{
		Category: CategoryStructuredData, Priority: PriorityLow, Issue: "extend-structured-data",
		Action: "Extend structured data with FAQPage or HowTo entities where the content fits",
	},
	{
		Category: CategoryBotAccessibility, Priority: PriorityLow, Issue: "extend-llms-txt",
		Action: "Extend llms.txt with per-section documentation links for AI crawlers",
	},
	{
		Category: CategoryExtractionFormat, Priority: PriorityLow, Issue: "add-answer-summaries",
		Action: "Add short summary blocks that answer engines can quote verbatim",
	},
}

// synthesizeRecommendations maps issue codes to recommendations, deduplicating
// by action text while preserving first-seen order. Unknown codes are skipped.
func synthesizeRecommendations(issues []string) []Recommendation {
	if len(issues) == 0 {
		out := make([]Recommendation, len(fallbackRecommendations))
		copy(out, fallbackRecommendations)
		return out
	}

	seen := make(map[string]bool, len(issues))
	recs := make([]Recommendation, 0, len(issues))
	for _, code := range issues {
		rec, ok := recommendationTable[code]
		if !ok || seen[rec.Action] {
			continue
		}
		seen[rec.Action] = true
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		out := make([]Recommendation, len(fallbackRecommendations))
		copy(out, fallbackRecommendations)
		return out
	}
	return recs
}
