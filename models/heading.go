package models

// Heading ist ein aus dem Markdown abgeleiteter (oder mitgelieferter) Titel eines Artikels.
// Der Bestand wird bei jeder Inhaltsänderung komplett neu berechnet, nicht inkrementell gepatcht.
type Heading struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Title        string `json:"title" gorm:"index:idx_heading_per_article,unique;not null"`
	MDXArticleID uint   `json:"mdx_article_id" gorm:"index:idx_heading_per_article,unique;not null"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Heading) TableName() string {
	return "headings"
}
