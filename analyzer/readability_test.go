package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreMachineReadabilityRange(t *testing.T) {
	for _, tc := range degenerateDocs {
		t.Run(tc.name, func(t *testing.T) {
			result, _ := scoreMachineReadability(mustDoc(t, tc.html))
			assert.GreaterOrEqual(t, result.Score, 0)
			assert.LessOrEqual(t, result.Score, CategoryMax)
			assert.Equal(t, CategoryMax, result.Max)
		})
	}
}

func TestScoreMachineReadabilityWellStructuredPage(t *testing.T) {
	html := `<html lang="en"><body>
		<header><nav>menu</nav></header>
		<main>
			<article>
				<h1>Main topic</h1>
				<section><h2>First section</h2><p>text</p></section>
				<aside>related</aside>
			</article>
		</main>
		<footer>contact</footer>
	</body></html>`

	result, issues := scoreMachineReadability(mustDoc(t, html))

	assert.Equal(t, 1, result.Details.H1Count)
	assert.True(t, result.Details.HasH2)
	assert.False(t, result.Details.HeadingSkip)
	assert.Equal(t, "en", result.Details.Language)
	assert.GreaterOrEqual(t, result.Details.LandmarkCount, 3)
	assert.GreaterOrEqual(t, result.Score, 20)
	assert.NotContains(t, issues, IssueMissingH1)
	assert.NotContains(t, issues, IssueMissingLang)
}

func TestScoreMachineReadabilityHeadingIssues(t *testing.T) {
	t.Run("no h1", func(t *testing.T) {
		_, issues := scoreMachineReadability(mustDoc(t, "<body><h2>only</h2></body>"))
		assert.Contains(t, issues, IssueMissingH1)
		assert.NotContains(t, issues, IssueMultipleH1)
	})

	t.Run("multiple h1", func(t *testing.T) {
		result, issues := scoreMachineReadability(mustDoc(t, "<body><h1>a</h1><h1>b</h1></body>"))
		assert.Contains(t, issues, IssueMultipleH1)
		assert.Equal(t, 2, result.Details.H1Count)
	})

	t.Run("level skip", func(t *testing.T) {
		result, issues := scoreMachineReadability(mustDoc(t, "<body><h1>a</h1><h3>skipped</h3></body>"))
		assert.True(t, result.Details.HeadingSkip)
		assert.Contains(t, issues, IssueHeadingSkip)
	})

	t.Run("no skip with full chain", func(t *testing.T) {
		result, issues := scoreMachineReadability(mustDoc(t, "<body><h1>a</h1><h2>b</h2><h3>c</h3></body>"))
		assert.False(t, result.Details.HeadingSkip)
		assert.NotContains(t, issues, IssueHeadingSkip)
	})
}

func TestScoreMachineReadabilityDivSoup(t *testing.T) {
	html := "<body>"
	for i := 0; i < 60; i++ {
		html += "<div><span>x</span></div>"
	}
	html += "<h1>t</h1></body>"

	result, issues := scoreMachineReadability(mustDoc(t, html))

	assert.Less(t, result.Details.SemanticRatio, 0.05)
	assert.Contains(t, issues, IssueGenericContainers)
	assert.Contains(t, issues, IssueLowSemanticHTML)
}

func TestScoreMachineReadabilityExplicitRoles(t *testing.T) {
	html := `<body><div role="banner">x</div><div role="navigation">y</div><div role="main">z</div><h1>t</h1></body>`
	result, _ := scoreMachineReadability(mustDoc(t, html))
	assert.Equal(t, 3, result.Details.LandmarkCount)
}
