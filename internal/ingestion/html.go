package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches page furniture that never carries document text
const noiseSelector = "nav, footer, header, script, style, noscript, iframe, form, .cookie-banner, .advertisement, .sidebar"

// blockSelector matches elements that end a line of text
const blockSelector = "p, div, li, br, tr, h1, h2, h3, h4, h5, h6, section, article, blockquote, pre, dt, dd"

// contentSelectors are tried in order to locate the main document body
var contentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	".document",
	".content",
	"#content",
}

// ExtractHTMLText returns the readable text of an HTML page. Block elements
// are separated by newlines so sentence boundaries survive.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	mainContent.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(mainContent.Text()), nil
}
