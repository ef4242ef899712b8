// ABOUTME: HTML utilities for turning captured markup into plain text
// ABOUTME: Keeps paragraph and line breaks, drops scripts, styles and tags

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr"

// StripHTML converts markup to plain text
func StripHTML(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CollapseLines(doc.Text())
}

// CollapseLines squeezes runs of spaces inside each line and drops blank lines
func CollapseLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
