package analyzer

import "time"

// Category names used across results, recommendations and the action plan.
const (
	CategoryMachineReadability = "machineReadability"
	CategoryStructuredData     = "structuredData"
	CategoryExtractionFormat   = "extractionFormat"
	CategoryBotAccessibility   = "botAccessibility"
)

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Action plan tiers.
const (
	TierCritical    = "critical"
	TierImportant   = "important"
	TierImprovement = "improvement"
)

// Score levels derived from the site average.
const (
	LevelCritical = "critical"
	LevelPoor     = "poor"
	LevelAverage  = "average"
	LevelGood     = "good"
)

// CategoryMax is the maximum score a single category can contribute.
const CategoryMax = 25

// CategoryScore is the common score/max pair embedded in every category result.
type CategoryScore struct {
	Score int `json:"score"`
	Max   int `json:"max"`
}

// MachineReadabilityResult scores how well the markup itself can be parsed.
type MachineReadabilityResult struct {
	CategoryScore
	Details MachineReadabilityDetails `json:"details"`
}

type MachineReadabilityDetails struct {
	SemanticTags  []string `json:"semanticTags"`
	H1Count       int      `json:"h1Count"`
	HasH2         bool     `json:"hasH2"`
	HeadingSkip   bool     `json:"headingSkip"`
	SemanticRatio float64  `json:"semanticRatio"`
	Language      string   `json:"language"`
	LandmarkCount int      `json:"landmarkCount"`
}

// StructuredDataResult scores machine-readable metadata blocks.
type StructuredDataResult struct {
	CategoryScore
	Details StructuredDataDetails `json:"details"`
}

type StructuredDataDetails struct {
	BlockCount        int      `json:"blockCount"`
	InvalidBlocks     int      `json:"invalidBlocks"`
	EntityTypes       []string `json:"entityTypes"`
	HasImportantType  bool     `json:"hasImportantType"`
	ValidContext      bool     `json:"validContext"`
	OpenGraphFields   int      `json:"openGraphFields"`
	TwitterCardFields int      `json:"twitterCardFields"`
}

// ExtractionFormatResult scores how quotable the content is for answer engines.
type ExtractionFormatResult struct {
	CategoryScore
	Details ExtractionFormatDetails `json:"details"`
}

type ExtractionFormatDetails struct {
	DescriptionLength   int    `json:"descriptionLength"`
	HasCanonical        bool   `json:"hasCanonical"`
	FAQStyle            string `json:"faqStyle"` // "semantic", "structured", "heuristic" or "none"
	OrderedListCount    int    `json:"orderedListCount"`
	DefinitionListCount int    `json:"definitionListCount"`
	CitedBlockquotes    int    `json:"citedBlockquotes"`
	TableCount          int    `json:"tableCount"`
	TablesWithHeaders   int    `json:"tablesWithHeaders"`
}

// BotAccessibilityResult scores whether AI crawlers can reach and read the page.
type BotAccessibilityResult struct {
	CategoryScore
	Details BotAccessibilityDetails `json:"details"`
}

type BotAccessibilityDetails struct {
	RobotsFound   bool     `json:"robotsFound"`
	BlockedAgents []string `json:"blockedAgents"`
	LLMSTxtFound  bool     `json:"llmsTxtFound"`
	Noindex       bool     `json:"noindex"`
	Nofollow      bool     `json:"nofollow"`
	TextLength    int      `json:"textLength"`
	TextRatio     float64  `json:"textRatio"`
	ScriptCount   int      `json:"scriptCount"`
	LikelyCSR     bool     `json:"likelyCsr"`
	TotalImages   int      `json:"totalImages"`
	ImagesWithAlt int      `json:"imagesWithAlt"`
	FetchTimeMs   int      `json:"fetchTimeMs"`
}

// Recommendation is a single remediation action derived from an issue code.
type Recommendation struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Issue    string `json:"issue"`
	Action   string `json:"action"`
	Page     string `json:"page,omitempty"`
}

// SiteRecommendation is a site-wide deduplicated recommendation with the pages
// that raised it.
type SiteRecommendation struct {
	Recommendation
	PageCount int      `json:"pageCount"`
	Pages     []string `json:"pages"`
}

// ActionItem is a recommendation enriched with effort, impact and urgency tier.
type ActionItem struct {
	Recommendation
	Effort string `json:"effort"`
	Impact int    `json:"impact"` // 1 (low) to 3 (high)
	Tier   string `json:"tier"`
}

// ActionPlan buckets deduplicated recommendations into urgency tiers.
type ActionPlan struct {
	Critical     []ActionItem `json:"critical"`
	Important    []ActionItem `json:"important"`
	Improvements []ActionItem `json:"improvements"`
}

// PageAnalysis is the complete readiness analysis of a single page.
type PageAnalysis struct {
	URL                string                   `json:"url"`
	Success            bool                     `json:"success"`
	Score              int                      `json:"score"`
	MachineReadability MachineReadabilityResult `json:"machineReadability"`
	StructuredData     StructuredDataResult     `json:"structuredData"`
	ExtractionFormat   ExtractionFormatResult   `json:"extractionFormat"`
	BotAccessibility   BotAccessibilityResult   `json:"botAccessibility"`
	Issues             []string                 `json:"issues"`
	Recommendations    []Recommendation         `json:"recommendations"`
	FetchTimeMs        int                      `json:"fetchTimeMs"`
	Error              string                   `json:"error,omitempty"`
}

// ProblemPage is a successful page scoring below the problem threshold.
type ProblemPage struct {
	URL   string `json:"url"`
	Score int    `json:"score"`
}

// Summary holds site-level score statistics.
type Summary struct {
	AverageScore   float64 `json:"averageScore"`
	MinScore       int     `json:"minScore"`
	MaxScore       int     `json:"maxScore"`
	PotentialScore int     `json:"potentialScore"`
	Level          string  `json:"level"`
	PagesAnalyzed  int     `json:"pagesAnalyzed"`
	PagesFailed    int     `json:"pagesFailed"`
}

// SiteReport is the full output of a site analysis run.
type SiteReport struct {
	ReportID        string               `json:"reportId"`
	RootURL         string               `json:"rootUrl"`
	GeneratedAt     time.Time            `json:"generatedAt"`
	DurationMs      int64                `json:"durationMs"`
	SitemapFound    bool                 `json:"sitemapFound"`
	Pages           []PageAnalysis       `json:"pages"`
	Summary         Summary              `json:"summary"`
	ProblemPages    []ProblemPage        `json:"problemPages"`
	Recommendations []SiteRecommendation `json:"recommendations"`
	ActionPlan      ActionPlan           `json:"actionPlan"`
}

// clampScore bounds a score to [0, max]. Individual scoring terms may overflow
// or go negative before clamping.
func clampScore(score, max int) int {
	if score < 0 {
		return 0
	}
	if score > max {
		return max
	}
	return score
}
