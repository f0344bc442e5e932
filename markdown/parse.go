package markdown

import (
	"regexp"
	"strings"
)

// fileRefPattern findet alle <img src="..."> Tags und Markdown-Bilder ![alt](...)
var fileRefPattern = regexp.MustCompile(`<img\s+[^>]*src=["']([^"']+)["'][^>]*>|!\[[^\]]*\]\(([^)]+)\)`)

// headingPattern findet Zeilen, die mit 1-6 '#' beginnen.
var headingPattern = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.+)$`)

// ExtractReferencedFiles returns the file names referenced by image tags in the
// markdown text, in order of first appearance. Duplicates are kept; callers
// that need a set must build one themselves.
func ExtractReferencedFiles(markdown string) []string {
	var files []string

	for _, match := range fileRefPattern.FindAllStringSubmatch(markdown, -1) {
		key := match[1]
		if key == "" {
			key = match[2]
		}
		if key == "" {
			continue
		}

		// nur der letzte Pfad-Abschnitt ist der Dateiname
		segments := strings.Split(key, "/")
		if name := segments[len(segments)-1]; name != "" {
			files = append(files, name)
		}
	}

	return files
}

// ExtractHeadings returns the text of every markdown heading in document
// order, with marker characters and surrounding whitespace stripped.
func ExtractHeadings(markdown string) []string {
	var headings []string

	for _, match := range headingPattern.FindAllStringSubmatch(markdown, -1) {
		if title := strings.TrimSpace(match[1]); title != "" {
			headings = append(headings, title)
		}
	}

	return headings
}
