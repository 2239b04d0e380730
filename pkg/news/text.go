package news

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"
)

var (
	truncationMarker = regexp.MustCompile(`\s*(…|\.\.\.)?\s*\[\+\d+ chars\]\s*$`)
	strictURLs       = xurls.Strict()
)

// CleanText turns an upstream article body into plain prose: markup and
// bare links are dropped, the NewsAPI "[+N chars]" suffix is cut and
// whitespace is collapsed.
func CleanText(s string) string {
	s = stripMarkup(s)
	s = truncationMarker.ReplaceAllString(s, "")
	s = strictURLs.ReplaceAllString(s, "")

	return collapseSpace(s)
}

// CleanTitle only drops markup and extra whitespace; a headline keeps its words,
// links included.
func CleanTitle(s string) string {
	return collapseSpace(stripMarkup(s))
}

func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
