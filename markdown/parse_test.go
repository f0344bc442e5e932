package markdown

import (
	"reflect"
	"testing"
)

func TestExtractHeadings(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []string
	}{
		{
			name:     "document order with mixed levels",
			markdown: "# Intro\n\nsome text\n\n## Details\n\n###### Deep\n",
			want:     []string{"Intro", "Details", "Deep"},
		},
		{
			name:     "marker and whitespace stripped",
			markdown: "##   Padded Title   \n",
			want:     []string{"Padded Title"},
		},
		{
			name:     "non-heading lines contribute nothing",
			markdown: "plain text\n#nospace\n####### seven markers\n",
			want:     nil,
		},
		{
			name:     "empty input",
			markdown: "",
			want:     nil,
		},
		{
			name:     "hash inside a line is not a heading",
			markdown: "see issue #42\n# Real\n",
			want:     []string{"Real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeadings(tt.markdown)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHeadings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractReferencedFiles(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []string
	}{
		{
			name:     "img tag and markdown image",
			markdown: `<img src="path/cover.png"> and ![alt](path/chart.svg)`,
			want:     []string{"cover.png", "chart.svg"},
		},
		{
			name:     "last path segment only",
			markdown: `![x](https://cdn.example.com/a/b/photo.jpg)`,
			want:     []string{"photo.jpg"},
		},
		{
			name:     "duplicates are kept in order",
			markdown: "![a](path/one.png)\n![b](path/two.png)\n![c](path/one.png)\n",
			want:     []string{"one.png", "two.png", "one.png"},
		},
		{
			name:     "img tag with extra attributes and single quotes",
			markdown: `<img class="wide" src='uploads/banner.webp' alt="b">`,
			want:     []string{"banner.webp"},
		},
		{
			name:     "no references",
			markdown: "# Heading\nJust [a link](https://example.com) here.",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReferencedFiles(tt.markdown)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractReferencedFiles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitizeToText(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "html tags removed",
			markdown: `hello <b>world</b><img src="x.png">`,
			want:     "hello world",
		},
		{
			name:     "image keeps alt text, link keeps label",
			markdown: "![diagram](path/d.png) and [docs](https://example.com)",
			want:     "diagram and docs",
		},
		{
			name:     "heading markers and emphasis stripped",
			markdown: "# Title\nsome *bold* _text_ `code`",
			want:     "Title some bold text code",
		},
		{
			name:     "whitespace collapsed",
			markdown: "a\n\n\n   b\t\tc",
			want:     "a b c",
		},
		{
			name:     "only markup yields empty string",
			markdown: "**``**",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToText(tt.markdown); got != tt.want {
				t.Errorf("SanitizeToText() = %q, want %q", got, tt.want)
			}
		})
	}
}
