package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mdx-press/cache"
	"mdx-press/config"
	"mdx-press/markdown"
	"mdx-press/models"
	"mdx-press/storage"
)

// previewHeadingLimit begrenzt die Headings in Vorschau-Antworten.
const previewHeadingLimit = 5

// RenderCache ist der Schlüssel-Wert-Cache für gerendertes HTML.
// Ein fehlender Schlüssel wird mit cache.ErrMiss signalisiert.
type RenderCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MDXArticleService orchestriert den Lebenszyklus von MDX-Artikeln:
// Artikelzeile, abgeleitete Headings, Dateien und Render-Cache werden
// pro Create/Update-Aufruf in einer Transaktion konsistent gehalten.
type MDXArticleService struct {
	Config   *config.Config
	DB       *gorm.DB
	Cache    RenderCache
	Store    storage.FileStore
	Renderer markdown.Renderer
	Logger   *zap.Logger
}

// NewMDXArticleService erstellt eine neue Instanz des MDXArticleService.
func NewMDXArticleService(cfg *config.Config, db *gorm.DB, renderCache RenderCache, store storage.FileStore, renderer markdown.Renderer, logger *zap.Logger) *MDXArticleService {
	return &MDXArticleService{
		Config:   cfg,
		DB:       db,
		Cache:    renderCache,
		Store:    store,
		Renderer: renderer,
		Logger:   logger,
	}
}

// HeadingInput ist ein vom Client mitgelieferter, ergänzender Heading-Titel.
type HeadingInput struct {
	Title string `json:"title" binding:"required"`
}

// CreateInput sind die Felder zum Anlegen eines Artikels.
type CreateInput struct {
	Title           string         `json:"title" binding:"required"`
	ContentMarkdown string         `json:"content_markdown" binding:"required"`
	AuthorUsername  string         `json:"author_username"`
	CoverImageURL   string         `json:"cover_image_url"`
	EventStartDate  *time.Time     `json:"event_start_date"`
	EventEndDate    *time.Time     `json:"event_end_date"`
	IsPublished     *bool          `json:"is_published"`
	Headings        []HeadingInput `json:"headings"`
}

// FileChanges benennt explizit zu löschende Datei-IDs.
type FileChanges struct {
	Delete []uint `json:"delete"`
}

// UpdateInput ist der Patch für einen bestehenden Artikel. Nur gesetzte
// Pointer-Felder werden angewendet; Headings == nil lässt den Bestand
// unberührt, solange sich das Markdown nicht ändert.
type UpdateInput struct {
	Title           *string        `json:"title"`
	AuthorUsername  *string        `json:"author_username"`
	CoverImageURL   *string        `json:"cover_image_url"`
	ContentMarkdown *string        `json:"content_markdown"`
	EventStartDate  *time.Time     `json:"event_start_date"`
	EventEndDate    *time.Time     `json:"event_end_date"`
	IsPublished     *bool          `json:"is_published"`
	Headings        []HeadingInput `json:"headings"`
	Files           *FileChanges   `json:"files"`
}

// Filters sind die optionalen Filterfelder für die Artikelsuche.
type Filters struct {
	Title          string     `json:"title"`
	AuthorUsername string     `json:"author_username"`
	EventStartDate *time.Time `json:"event_start_date"`
	EventEndDate   *time.Time `json:"event_end_date"`
}

// FileBundle beschreibt die für einen Request zwischengespeicherten Uploads.
type FileBundle struct {
	TempDir string
	Names   []string
}

// HeadingPreview ist die API-Sicht auf einen Heading.
type HeadingPreview struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// Preview ist die Listen-/Detailsicht eines Artikels ohne Markdown-Quelltext.
type Preview struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Slug           string           `json:"slug"`
	AuthorUsername string           `json:"author_username,omitempty"`
	EventStartDate *time.Time       `json:"event_start_date,omitempty"`
	EventEndDate   *time.Time       `json:"event_end_date,omitempty"`
	Headings       []HeadingPreview `json:"headings,omitempty"`
}

// ContentResult ist die Antwort von GetContent.
type ContentResult struct {
	ContentHTML string           `json:"content_html"`
	Headings    []HeadingPreview `json:"headings"`
}

// SearchResult ist die Antwort von SearchByContent.
type SearchResult struct {
	MDXArticle  Preview `json:"mdx_article"`
	ContentHTML string  `json:"content_html"`
}

// DeleteOutcome hält das Ergebnis für eine einzelne ID beim Bulk-Delete fest.
type DeleteOutcome struct {
	ID      uint   `json:"id"`
	Deleted bool   `json:"deleted"`
	Reason  string `json:"reason,omitempty"`
}

// BulkDeleteResult fasst einen Bulk-Delete zusammen. Status: 200 voller
// Erfolg, 206 teilweiser Erfolg, 400 Fehlerbudget erreicht.
type BulkDeleteResult struct {
	Status   int             `json:"status"`
	Outcomes []DeleteOutcome `json:"outcomes"`
}

// GetByID liefert die Vorschau eines Artikels inklusive der ersten Headings.
func (s *MDXArticleService) GetByID(ctx context.Context, id uint) (*Preview, error) {
	var article models.MDXArticle
	err := s.DB.WithContext(ctx).Preload("Headings").First(&article, id).Error
	if err != nil {
		return nil, rethrow("GetByID", err)
	}

	preview := buildPreview(&article, previewHeadingLimit)
	return &preview, nil
}

// GetFiltered liefert Vorschauen aller Artikel, die zu den Filtern passen.
// Ohne ein einziges gesetztes Filterfeld ist die Anfrage ungültig.
func (s *MDXArticleService) GetFiltered(ctx context.Context, filters Filters) ([]Preview, error) {
	query := s.DB.WithContext(ctx).Model(&models.MDXArticle{})
	applied := false

	if filters.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filters.Title)+"%")
		applied = true
	}
	if filters.AuthorUsername != "" {
		query = query.Where("LOWER(author_username) LIKE ?", "%"+strings.ToLower(filters.AuthorUsername)+"%")
		applied = true
	}
	if filters.EventStartDate != nil {
		query = query.Where("event_start_date >= ?", *filters.EventStartDate)
		applied = true
	}
	if filters.EventEndDate != nil {
		query = query.Where("event_end_date <= ?", *filters.EventEndDate)
		applied = true
	}

	if !applied {
		return nil, rethrow("GetFiltered", BadRequest("invalid filter params"))
	}

	var articles []models.MDXArticle
	if err := query.Preload("Headings").Find(&articles).Error; err != nil {
		return nil, rethrow("GetFiltered", err)
	}

	previews := make([]Preview, 0, len(articles))
	for i := range articles {
		previews = append(previews, buildPreview(&articles[i], previewHeadingLimit))
	}
	return previews, nil
}

// SearchByContent sucht den ersten Artikel, dessen Markdown den bereinigten
// Suchtext enthält, und liefert ihn mit dem gecachten HTML aus.
func (s *MDXArticleService) SearchByContent(ctx context.Context, content string) (*SearchResult, error) {
	cleaned := markdown.SanitizeToText(content)
	if cleaned == "" {
		return nil, rethrow("SearchByContent", BadRequest("invalid content"))
	}

	var article models.MDXArticle
	err := s.DB.WithContext(ctx).
		Where("LOWER(content_markdown) LIKE ?", "%"+strings.ToLower(cleaned)+"%").
		First(&article).Error
	if err != nil {
		return nil, rethrow("SearchByContent", err)
	}

	html, err := s.Cache.Get(ctx, contentKey(article.ID))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			err = NotFound(fmt.Sprintf("content for mdx article %d not found", article.ID))
		}
		return nil, rethrow("SearchByContent", err)
	}

	return &SearchResult{MDXArticle: buildPreview(&article, 0), ContentHTML: html}, nil
}

// GetContent liefert das gecachte HTML und alle Headings eines Artikels.
// Ein fehlender Cache-Eintrag ist hier ein NotFound, kein Regenerations-Fall;
// der Cache wird nur bei Inhaltsänderungen und vom Warm-Job geschrieben.
func (s *MDXArticleService) GetContent(ctx context.Context, id uint) (*ContentResult, error) {
	var article models.MDXArticle
	if err := s.DB.WithContext(ctx).Preload("Headings").First(&article, id).Error; err != nil {
		return nil, rethrow("GetContent", err)
	}

	html, err := s.Cache.Get(ctx, contentKey(id))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			err = NotFound(fmt.Sprintf("content for mdx article %d not found", id))
		}
		return nil, rethrow("GetContent", err)
	}

	return &ContentResult{ContentHTML: html, Headings: headingPreviews(article.Headings)}, nil
}

// Create legt einen Artikel samt Dateien, Headings und Cache-Eintrag in einer
// Transaktion an. Bereits verschobene Dateien werden bei einem Rollback über
// die Kompensationsliste wieder entfernt.
func (s *MDXArticleService) Create(ctx context.Context, input CreateInput, bundle *FileBundle) (*models.MDXArticle, error) {
	defer s.cleanupTempDir(bundle)

	var created models.MDXArticle
	var moved []string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		article := models.MDXArticle{
			Title:           input.Title,
			Slug:            slug.Make(input.Title),
			CoverImageURL:   input.CoverImageURL,
			AuthorUsername:  input.AuthorUsername,
			ContentMarkdown: input.ContentMarkdown,
			EventStartDate:  input.EventStartDate,
			EventEndDate:    input.EventEndDate,
			IsPublished:     input.IsPublished == nil || *input.IsPublished,
		}
		if err := tx.Create(&article).Error; err != nil {
			return err
		}

		referenced := markdown.ExtractReferencedFiles(input.ContentMarkdown)

		var saved []markdown.FileInfo
		if bundle != nil {
			var err error
			saved, err = s.processFiles(tx, bundle, article.ID, referenced, &moved)
			if err != nil {
				return err
			}
		}

		html, err := s.renderWithFiles(input.ContentMarkdown, saved)
		if err != nil {
			return err
		}

		// Initialbestand: geparste + explizite Headings + Artikeltitel
		titles := markdown.ExtractHeadings(input.ContentMarkdown)
		for _, h := range input.Headings {
			titles = append(titles, h.Title)
		}
		titles = append(titles, input.Title)
		if err := s.insertHeadings(tx, article.ID, titles); err != nil {
			return err
		}

		if err := s.Cache.Set(ctx, contentKey(article.ID), html); err != nil {
			return err
		}

		created = article
		return nil
	})
	if err != nil {
		s.compensateMoves(moved)
		return nil, rethrow("Create", err)
	}

	s.Logger.Info("MDX article created",
		zap.Uint("id", created.ID), zap.String("title", created.Title))
	return &created, nil
}

// Update wendet einen Sparse-Patch an und hält Dateien, Headings und Cache
// konsistent. Nur bei geändertem Markdown wird neu gerendert; Headings werden
// nur synchronisiert, wenn Headings oder Markdown im Patch enthalten sind.
func (s *MDXArticleService) Update(ctx context.Context, id uint, input UpdateInput, bundle *FileBundle) (*models.MDXArticle, []HeadingPreview, error) {
	defer s.cleanupTempDir(bundle)

	var updated models.MDXArticle
	var moved []string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.MDXArticle
		if err := tx.Preload("Files").First(&article, id).Error; err != nil {
			return err
		}

		patch := buildPatch(input)
		if len(patch) > 0 {
			if err := tx.Model(&models.MDXArticle{}).Where("id = ?", id).Updates(patch).Error; err != nil {
				return err
			}
		}

		newMarkdown := article.ContentMarkdown
		if input.ContentMarkdown != nil {
			newMarkdown = *input.ContentMarkdown
		}
		referenced := markdown.ExtractReferencedFiles(newMarkdown)

		if input.Files != nil && len(input.Files.Delete) > 0 {
			if err := s.deleteFiles(tx, input.Files.Delete); err != nil {
				return err
			}
		}

		var saved []markdown.FileInfo
		if bundle != nil {
			var err error
			saved, err = s.processFiles(tx, bundle, id, referenced, &moved)
			if err != nil {
				return err
			}
		}
		merged := append(saved, retainedFiles(article.Files, input.Files)...)

		var newHTML string
		if input.ContentMarkdown != nil {
			html, err := s.renderWithFiles(newMarkdown, merged)
			if err != nil {
				return err
			}
			newHTML = html
		}

		if input.Headings != nil || input.ContentMarkdown != nil {
			// Kombinierte Liste neu aufbauen, Eingaben bleiben unverändert.
			titles := make([]string, 0, len(input.Headings)+1)
			for _, h := range input.Headings {
				titles = append(titles, h.Title)
			}
			if input.ContentMarkdown != nil {
				titles = append(titles, markdown.ExtractHeadings(newMarkdown)...)
			}
			newTitle := article.Title
			if input.Title != nil {
				newTitle = *input.Title
			}
			titles = append(titles, newTitle)

			if err := s.syncHeadings(tx, id, titles); err != nil {
				return err
			}
		}

		if err := tx.First(&article, id).Error; err != nil {
			return err
		}

		// Cache-Write erst nach dem letzten fehlbaren DB-Schritt: scheitert
		// die Heading-Synchronisation, bleibt das alte HTML im Cache.
		if input.ContentMarkdown != nil {
			if err := s.Cache.Set(ctx, contentKey(id), newHTML); err != nil {
				return err
			}
		}

		updated = article
		return nil
	})
	if err != nil {
		s.compensateMoves(moved)
		return nil, nil, rethrow("Update", err)
	}

	var headings []models.Heading
	if err := s.DB.WithContext(ctx).Where("mdx_article_id = ?", id).Find(&headings).Error; err != nil {
		return nil, nil, rethrow("Update", err)
	}

	s.Logger.Info("MDX article updated", zap.Uint("id", id))
	return &updated, headingPreviews(headings), nil
}

// BulkDelete löscht Artikel sequenziell, jeder in eigener Transaktion.
// Fehlerbudget: max(floor(n/2), 1). Ist es erreicht, wird abgebrochen;
// bereits gelöschte Artikel bleiben gelöscht.
func (s *MDXArticleService) BulkDelete(ctx context.Context, ids []uint) (*BulkDeleteResult, error) {
	budget := len(ids) / 2
	if budget < 1 {
		budget = 1
	}

	errCount := 0
	outcomes := make([]DeleteOutcome, 0, len(ids))

	for _, id := range ids {
		if errCount >= budget {
			break
		}

		if err := s.deleteOne(ctx, id); err != nil {
			errCount++
			s.Logger.Warn("bulk delete: article skipped", zap.Uint("id", id), zap.Error(err))
			outcomes = append(outcomes, DeleteOutcome{ID: id, Reason: err.Error()})
			continue
		}
		outcomes = append(outcomes, DeleteOutcome{ID: id, Deleted: true})
	}

	status := 200
	switch {
	case errCount >= budget:
		status = 400
	case errCount > 0:
		status = 206
	}

	s.Logger.Info("bulk delete finished",
		zap.Int("requested", len(ids)), zap.Int("errors", errCount), zap.Int("status", status))
	return &BulkDeleteResult{Status: status, Outcomes: outcomes}, nil
}

// WarmRenderCache rendert alle veröffentlichten Artikel neu und schreibt das
// HTML in den Cache. Läuft periodisch per Cron, damit verlorene oder
// veraltete Cache-Einträge wieder aufgefüllt werden.
func (s *MDXArticleService) WarmRenderCache(ctx context.Context) (int, error) {
	var articles []models.MDXArticle
	err := s.DB.WithContext(ctx).Preload("Files").Where("is_published = ?", true).Find(&articles).Error
	if err != nil {
		return 0, rethrow("WarmRenderCache", err)
	}

	warmed := 0
	for i := range articles {
		article := &articles[i]
		html, err := s.renderWithFiles(article.ContentMarkdown, fileInfos(article.Files))
		if err != nil {
			s.Logger.Warn("cache warm: render failed", zap.Uint("id", article.ID), zap.Error(err))
			continue
		}
		if err := s.Cache.Set(ctx, contentKey(article.ID), html); err != nil {
			s.Logger.Warn("cache warm: cache write failed", zap.Uint("id", article.ID), zap.Error(err))
			continue
		}
		warmed++
	}
	return warmed, nil
}

// deleteOne löscht einen Artikel samt Headings und Datei-Zeilen in einer
// eigenen Transaktion; der Cache-Eintrag wird danach best-effort entfernt.
func (s *MDXArticleService) deleteOne(ctx context.Context, id uint) error {
	var article models.MDXArticle
	if err := s.DB.WithContext(ctx).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound(fmt.Sprintf("mdx article with id %d does not exist", id))
		}
		return err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Select(clause.Associations).Delete(&article).Error
	})
	if err != nil {
		return err
	}

	if err := s.Cache.Delete(ctx, contentKey(id)); err != nil {
		s.Logger.Warn("cache delete failed", zap.Uint("id", id), zap.Error(err))
	}
	return nil
}

// syncHeadings gleicht den Heading-Bestand eines Artikels mit der neuen
// Titelliste ab: Differenzmenge löschen bzw. anlegen, Schnittmenge unberührt
// lassen. Alle Operationen sind auf die Artikel-ID eingeschränkt.
func (s *MDXArticleService) syncHeadings(tx *gorm.DB, articleID uint, titles []string) error {
	var existing []models.Heading
	if err := tx.Where("mdx_article_id = ?", articleID).Find(&existing).Error; err != nil {
		return err
	}

	next := uniqueTitles(titles)
	nextSet := make(map[string]struct{}, len(next))
	for _, title := range next {
		nextSet[title] = struct{}{}
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		existingSet[h.Title] = struct{}{}
	}

	var toDelete []string
	for _, h := range existing {
		if _, ok := nextSet[h.Title]; !ok {
			toDelete = append(toDelete, h.Title)
		}
	}
	var toCreate []string
	for _, title := range next {
		if _, ok := existingSet[title]; !ok {
			toCreate = append(toCreate, title)
		}
	}

	if len(toDelete) > 0 {
		err := tx.Where("mdx_article_id = ? AND title IN ?", articleID, toDelete).
			Delete(&models.Heading{}).Error
		if err != nil {
			return err
		}
	}
	return s.insertHeadings(tx, articleID, toCreate)
}

// insertHeadings legt die Titel als Headings des Artikels an (dedupliziert,
// Reihenfolge bleibt erhalten).
func (s *MDXArticleService) insertHeadings(tx *gorm.DB, articleID uint, titles []string) error {
	unique := uniqueTitles(titles)
	if len(unique) == 0 {
		return nil
	}

	headings := make([]models.Heading, 0, len(unique))
	for _, title := range unique {
		headings = append(headings, models.Heading{Title: title, MDXArticleID: articleID})
	}
	return tx.Create(&headings).Error
}

// processFiles übernimmt nur Uploads, die im Markdown referenziert sind, in
// die dauerhafte Ablage. Jede Datei wird best-effort verarbeitet: schlägt die
// Metadaten-Zeile fehl, wird nur deren Verschiebung rückgängig gemacht.
func (s *MDXArticleService) processFiles(tx *gorm.DB, bundle *FileBundle, articleID uint, referenced []string, moved *[]string) ([]markdown.FileInfo, error) {
	refSet := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		refSet[strings.ToLower(name)] = struct{}{}
	}

	var saved []markdown.FileInfo
	destFolder := fmt.Sprintf("mdx-articles/%d", articleID)

	for _, name := range bundle.Names {
		if _, ok := refSet[strings.ToLower(name)]; !ok {
			s.Logger.Debug("upload not referenced in markdown, skipping", zap.String("file", name))
			continue
		}

		uniqueID := uuid.NewString()
		finalPath, err := s.Store.MoveToFinal(bundle.TempDir, name, destFolder, uniqueID)
		if err != nil {
			s.Logger.Warn("file move failed", zap.String("file", name), zap.Error(err))
			continue
		}

		record := models.MDXArticleFile{MDXArticleID: articleID, Path: finalPath, OriginalName: name}
		err = tx.Transaction(func(ftx *gorm.DB) error {
			return ftx.Create(&record).Error
		})
		if err != nil {
			s.Logger.Warn("file record failed, removing stored file",
				zap.String("file", name), zap.Error(err))
			if rmErr := s.Store.Remove(finalPath); rmErr != nil {
				s.Logger.Warn("orphan cleanup failed", zap.String("path", finalPath), zap.Error(rmErr))
			}
			continue
		}

		*moved = append(*moved, finalPath)
		saved = append(saved, markdown.FileInfo{OriginalName: name, Path: finalPath})
	}

	return saved, nil
}

// deleteFiles entfernt explizit angeforderte Dateien; unbekannte IDs werden
// übersprungen, das Storage-Artefakt wird best-effort gelöscht.
func (s *MDXArticleService) deleteFiles(tx *gorm.DB, fileIDs []uint) error {
	for _, fileID := range fileIDs {
		var file models.MDXArticleFile
		if err := tx.First(&file, fileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if err := tx.Delete(&models.MDXArticleFile{}, fileID).Error; err != nil {
			return err
		}
		if err := s.Store.Remove(file.Path); err != nil {
			s.Logger.Warn("file artifact removal failed", zap.String("path", file.Path), zap.Error(err))
		}
	}
	return nil
}

// renderWithFiles ersetzt die Datei-Platzhalter und rendert das Markdown.
func (s *MDXArticleService) renderWithFiles(md string, files []markdown.FileInfo) (string, error) {
	return s.Renderer.Render(markdown.ResolveFilePaths(md, files))
}

// cleanupTempDir räumt das Staging-Verzeichnis eines Requests auf. Läuft auf
// jedem Ausgang von Create/Update, auch wenn der Artikel-Insert schon scheitert.
func (s *MDXArticleService) cleanupTempDir(bundle *FileBundle) {
	if bundle == nil {
		return
	}
	if err := s.Store.RemoveDir(bundle.TempDir); err != nil {
		s.Logger.Warn("temp dir cleanup failed", zap.String("dir", bundle.TempDir), zap.Error(err))
	}
}

// compensateMoves macht nach einem Rollback bereits verschobene Dateien
// rückgängig, damit Storage und Datenbank nicht auseinanderlaufen.
func (s *MDXArticleService) compensateMoves(moved []string) {
	for _, path := range moved {
		if err := s.Store.Remove(path); err != nil {
			s.Logger.Warn("compensation: file removal failed", zap.String("path", path), zap.Error(err))
		}
	}
}

// buildPatch baut die Update-Map nur aus den gesetzten Feldern; bei neuem
// Titel wird der Slug mit abgeleitet.
func buildPatch(input UpdateInput) map[string]interface{} {
	patch := map[string]interface{}{}
	if input.Title != nil {
		patch["title"] = *input.Title
		patch["slug"] = slug.Make(*input.Title)
	}
	if input.AuthorUsername != nil {
		patch["author_username"] = *input.AuthorUsername
	}
	if input.CoverImageURL != nil {
		patch["cover_image_url"] = *input.CoverImageURL
	}
	if input.ContentMarkdown != nil {
		patch["content_markdown"] = *input.ContentMarkdown
	}
	if input.EventStartDate != nil {
		patch["event_start_date"] = *input.EventStartDate
	}
	if input.EventEndDate != nil {
		patch["event_end_date"] = *input.EventEndDate
	}
	if input.IsPublished != nil {
		patch["is_published"] = *input.IsPublished
	}
	return patch
}

// retainedFiles liefert die bestehenden Dateien ohne die zum Löschen markierten.
func retainedFiles(files []models.MDXArticleFile, changes *FileChanges) []markdown.FileInfo {
	deleted := map[uint]struct{}{}
	if changes != nil {
		for _, id := range changes.Delete {
			deleted[id] = struct{}{}
		}
	}

	var retained []markdown.FileInfo
	for _, file := range files {
		if _, ok := deleted[file.ID]; ok {
			continue
		}
		retained = append(retained, markdown.FileInfo{OriginalName: file.OriginalName, Path: file.Path})
	}
	return retained
}

func fileInfos(files []models.MDXArticleFile) []markdown.FileInfo {
	infos := make([]markdown.FileInfo, 0, len(files))
	for _, file := range files {
		infos = append(infos, markdown.FileInfo{OriginalName: file.OriginalName, Path: file.Path})
	}
	return infos
}

func headingPreviews(headings []models.Heading) []HeadingPreview {
	previews := make([]HeadingPreview, 0, len(headings))
	for _, h := range headings {
		previews = append(previews, HeadingPreview{ID: h.ID, Title: h.Title})
	}
	return previews
}

func buildPreview(article *models.MDXArticle, headingLimit int) Preview {
	headings := article.Headings
	if headingLimit > 0 && len(headings) > headingLimit {
		headings = headings[:headingLimit]
	}
	return Preview{
		ID:             article.ID,
		Title:          article.Title,
		Slug:           article.Slug,
		AuthorUsername: article.AuthorUsername,
		EventStartDate: article.EventStartDate,
		EventEndDate:   article.EventEndDate,
		Headings:       headingPreviews(headings),
	}
}

// uniqueTitles dedupliziert unter Beibehaltung der Reihenfolge.
func uniqueTitles(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	unique := make([]string, 0, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		unique = append(unique, title)
	}
	return unique
}

func contentKey(id uint) string {
	return cache.Key(cache.ContentHTMLPrefix, strconv.FormatUint(uint64(id), 10))
}
