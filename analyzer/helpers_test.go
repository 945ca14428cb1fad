package analyzer

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// degenerateDocs are inputs every scorer must survive with a score in range.
var degenerateDocs = []struct {
	name string
	html string
}{
	{"empty", ""},
	{"bare html", "<html></html>"},
	{"plain text", "just some text, no markup at all"},
	{"broken markup", "<div><h1>unclosed<table><td>"},
}
