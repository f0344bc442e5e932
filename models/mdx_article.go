package models

import (
	"time"
)

// MDXArticle repräsentiert einen MDX-Artikel mit Markdown-Quelltext und Metadaten.
type MDXArticle struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title string `json:"title" gorm:"uniqueIndex;not null"`
	Slug  string `json:"slug" gorm:"uniqueIndex;not null"` // immer aus Title abgeleitet

	CoverImageURL  string `json:"cover_image_url,omitempty" gorm:"default:'/public/default-cover.png'"`
	AuthorUsername string `json:"author_username,omitempty" gorm:"index"`

	// Quelle der Wahrheit; gerendertes HTML liegt nur im Cache.
	ContentMarkdown string `json:"content_markdown" gorm:"type:text;not null"`

	EventStartDate *time.Time `json:"event_start_date,omitempty"`
	EventEndDate   *time.Time `json:"event_end_date,omitempty"`

	IsPublished bool `json:"is_published" gorm:"default:true"`

	Headings []Heading        `json:"headings,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Files    []MDXArticleFile `json:"files,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName gibt explizit den Tabellennamen an.
func (MDXArticle) TableName() string {
	return "mdx_articles"
}
