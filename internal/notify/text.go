package notify

import (
	"html"
	"regexp"
	"strings"
)

var (
	breakTags  = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</h[1-6]>|</li>|</tr>`)
	anyTag     = regexp.MustCompile(`<[^>]*>`)
	hrefAttr   = regexp.MustCompile(`(?i)<a\s[^>]*href="([^"]+)"[^>]*>`)
	blankLines = regexp.MustCompile(`\n\s*\n+`)
)

// htmlToText produces a readable plain-text rendition of a template body.
// Link targets are kept next to their text.
func htmlToText(body string) string {
	text := hrefAttr.ReplaceAllString(body, "($1) ")
	text = breakTags.ReplaceAllString(text, "\n")
	text = anyTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
