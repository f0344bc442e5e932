package models

// MDXArticleFile ist eine im Markdown referenzierte, dauerhaft gespeicherte Datei.
type MDXArticleFile struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	MDXArticleID uint   `json:"mdx_article_id" gorm:"index;not null"`
	Path         string `json:"path" gorm:"not null"`
	OriginalName string `json:"original_name" gorm:"uniqueIndex;not null"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (MDXArticleFile) TableName() string {
	return "mdx_article_files"
}
