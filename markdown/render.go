package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// FileInfo verknüpft den im Markdown benutzten Dateinamen mit dem finalen Speicherpfad.
type FileInfo struct {
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
}

// Renderer wandelt Markdown-Quelltext in HTML um.
type Renderer interface {
	Render(markdown string) (string, error)
}

// GoldmarkRenderer ist der Standard-Renderer auf Basis von goldmark.
// Die Instanz ist zustandslos und kann über Requests hinweg geteilt werden.
type GoldmarkRenderer struct {
	engine goldmark.Markdown
}

// NewGoldmarkRenderer erstellt einen Renderer mit GFM-Erweiterungen.
// Raw-HTML bleibt erlaubt, da MDX-Artikel eingebettete Tags enthalten.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render wandelt Markdown in einen HTML-String um.
func (r *GoldmarkRenderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// ResolveFilePaths ersetzt jeden "path/<originalName>" Platzhalter im Markdown
// durch den tatsächlichen Speicherpfad der Datei.
func ResolveFilePaths(markdown string, files []FileInfo) string {
	for _, file := range files {
		markdown = strings.ReplaceAll(markdown, "path/"+file.OriginalName, file.Path)
	}
	return markdown
}
