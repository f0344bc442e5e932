package markdown

import (
	"strings"
	"testing"
)

func TestGoldmarkRendererBasics(t *testing.T) {
	renderer := NewGoldmarkRenderer()

	html, err := renderer.Render("# Hello\n\nsome **bold** text")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Hello") {
		t.Errorf("expected rendered heading, got %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected bold text, got %q", html)
	}
}

func TestGoldmarkRendererKeepsRawHTML(t *testing.T) {
	renderer := NewGoldmarkRenderer()

	html, err := renderer.Render(`<img src="uploads/a.png">`)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html, `<img src="uploads/a.png">`) {
		t.Errorf("raw html should survive rendering, got %q", html)
	}
}

func TestGoldmarkRendererDeterministic(t *testing.T) {
	renderer := NewGoldmarkRenderer()
	input := "# Title\n\n![img](path/pic.png)\n\n- one\n- two\n"

	first, err := renderer.Render(input)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := renderer.Render(input)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if first != second {
		t.Errorf("rendering is not deterministic:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestResolveFilePaths(t *testing.T) {
	md := "![a](path/pic.png)\n<img src=\"path/pic.png\">\n![b](path/other.png)\n"
	files := []FileInfo{
		{OriginalName: "pic.png", Path: "/public/uploads/mdx-articles/7/abc.png"},
	}

	resolved := ResolveFilePaths(md, files)

	if strings.Contains(resolved, "path/pic.png") {
		t.Errorf("placeholder should be replaced everywhere, got %q", resolved)
	}
	if strings.Count(resolved, "/public/uploads/mdx-articles/7/abc.png") != 2 {
		t.Errorf("expected both occurrences replaced, got %q", resolved)
	}
	if !strings.Contains(resolved, "path/other.png") {
		t.Errorf("unrelated placeholder must stay, got %q", resolved)
	}
}
