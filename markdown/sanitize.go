package markdown

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	imagePattern      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headingMarkers    = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	emphasisMarkers   = regexp.MustCompile("[*_~`]")
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeToText reduziert Markdown auf reinen Text für die Volltextsuche:
// HTML-Tags raus, von Bildern bleibt der Alt-Text, von Links der Linktext.
func SanitizeToText(markdown string) string {
	text := htmlTagPattern.ReplaceAllString(markdown, "")
	text = imagePattern.ReplaceAllString(text, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = headingMarkers.ReplaceAllString(text, "")
	text = emphasisMarkers.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
