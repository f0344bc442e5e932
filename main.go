package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mdx-press/cache"
	"mdx-press/config"
	"mdx-press/markdown"
	"mdx-press/models"
	"mdx-press/services"
	"mdx-press/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	articlesCreatedCounter prometheus.Counter
	articlesDeletedCounter prometheus.Counter
)

func init() {
	articlesCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdx_articles_created_total",
			Help: "Total number of MDX articles created.",
		},
	)
	articlesDeletedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdx_articles_deleted_total",
			Help: "Total number of MDX articles deleted.",
		},
	)
	prometheus.MustRegister(articlesCreatedCounter, articlesDeletedCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to database.")

	logging.Info("Running database auto-migration...")
	if err := db.AutoMigrate(&models.MDXArticle{}, &models.Heading{}, &models.MDXArticleFile{}); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Setup Redis
	renderCache := cache.NewClient(cfg)
	if err := renderCache.Ping(context.Background()); err != nil {
		logging.Fatal("Failed to connect to redis", zap.Error(err))
	}
	logging.Info("Successfully connected to redis.")

	// Setup File Store
	var store storage.FileStore
	switch cfg.FileStore {
	case "s3":
		s3Store, err := storage.NewS3Store(cfg)
		if err != nil {
			logging.Fatal("S3 store creation failed", zap.Error(err))
		}
		store = s3Store
		logging.Info("Using S3 file store", zap.String("bucket", cfg.S3Bucket))
	default:
		store = storage.NewLocalStore(cfg.UploadRootDir)
		logging.Info("Using local file store", zap.String("root", cfg.UploadRootDir))
	}

	// Setup Service
	articleService := services.NewMDXArticleService(
		cfg, db, renderCache, store, markdown.NewGoldmarkRenderer(), logging)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupMDXArticleRoutes(router, articleService, cfg, logging)

	// Setup Cron: Render-Cache regelmäßig auffrischen
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CacheWarmSchedule, func() {
		logging.Info("Running scheduled render cache warm job...")
		count, err := articleService.WarmRenderCache(context.Background())
		if err != nil {
			logging.Error("Cache warm job failed", zap.Error(err))
		} else {
			logging.Info("Cache warm job completed", zap.Int("articles_warmed", count))
		}
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupMDXArticleRoutes(router *gin.Engine, svc *services.MDXArticleService, cfg *config.Config, log *zap.Logger) {
	rg := router.Group("/mdx-articles")

	// POST statt GET, da Filter-Payloads zu groß für die Query sein können
	rg.POST("/filtered", func(c *gin.Context) {
		var filters services.Filters
		if err := c.ShouldBindJSON(&filters); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		previews, err := svc.GetFiltered(c.Request.Context(), filters)
		if err != nil {
			sendServiceError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, previews)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		preview, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			sendServiceError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, preview)
	})

	rg.GET("/content/:id", func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		content, err := svc.GetContent(c.Request.Context(), id)
		if err != nil {
			sendServiceError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, content)
	})

	rg.GET("/search/:content", func(c *gin.Context) {
		result, err := svc.SearchByContent(c.Request.Context(), c.Param("content"))
		if err != nil {
			sendServiceError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	// POST - Create article (multipart: "data" JSON + "files")
	rg.POST("/", func(c *gin.Context) {
		var input services.CreateInput
		if err := json.Unmarshal([]byte(c.PostForm("data")), &input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: 'data' field is required"})
			return
		}
		if input.Title == "" || input.ContentMarkdown == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and content_markdown are required"})
			return
		}

		bundle, err := stageUploads(c, cfg)
		if err != nil {
			log.Error("Upload staging failed", zap.Error(err))
			sendServiceError(c, log, err)
			return
		}

		article, err := svc.Create(c.Request.Context(), input, bundle)
		if err != nil {
			sendServiceError(c, log, err)
			return
		}

		articlesCreatedCounter.Inc()
		c.JSON(http.StatusCreated, article)
	})

	// PUT - Update article (multipart: "data" JSON {id, options} + "files")
	rg.PUT("/update", func(c *gin.Context) {
		var payload struct {
			ID      uint                 `json:"id"`
			Options services.UpdateInput `json:"options"`
		}
		if err := json.Unmarshal([]byte(c.PostForm("data")), &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: 'data' field is required"})
			return
		}
		if payload.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		bundle, err := stageUploads(c, cfg)
		if err != nil {
			log.Error("Upload staging failed", zap.Error(err))
			sendServiceError(c, log, err)
			return
		}

		article, headings, err := svc.Update(c.Request.Context(), payload.ID, payload.Options, bundle)
		if err != nil {
			sendServiceError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"mdx_article": article, "headings": headings})
	})

	// DELETE - Bulk delete via ?ids=1,2,3
	rg.DELETE("/bulk", func(c *gin.Context) {
		ids, ok := parseIDList(c.Query("ids"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ids"})
			return
		}

		result, err := svc.BulkDelete(c.Request.Context(), ids)
		if err != nil {
			sendServiceError(c, log, err)
			return
		}

		var message string
		switch result.Status {
		case http.StatusOK:
			message = "MDX articles deleted"
		case http.StatusPartialContent:
			message = "MDX articles deleted partially"
		default:
			message = "MDX articles were not deleted: too many failures"
		}

		for _, outcome := range result.Outcomes {
			if outcome.Deleted {
				articlesDeletedCounter.Inc()
			}
		}
		c.JSON(result.Status, gin.H{"message": message, "outcomes": result.Outcomes})
	})
}

// stageUploads legt die Multipart-Dateien in einem frischen, request-eigenen
// Temp-Verzeichnis ab. Kein "files"-Feld bedeutet kein Bundle.
func stageUploads(c *gin.Context, cfg *config.Config) (*services.FileBundle, error) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return nil, nil
	}

	tempDir := filepath.Join(cfg.UploadTempDir, uuid.NewString())
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, services.Internal("server has not prepared necessary dirs")
	}

	bundle := &services.FileBundle{TempDir: tempDir}
	for _, fileHeader := range form.File["files"] {
		name := filepath.Base(fileHeader.Filename)
		if err := c.SaveUploadedFile(fileHeader, filepath.Join(tempDir, name)); err != nil {
			os.RemoveAll(tempDir)
			return nil, services.Internal("failed to store uploaded file")
		}
		bundle.Names = append(bundle.Names, name)
	}
	return bundle, nil
}

func sendServiceError(c *gin.Context, log *zap.Logger, err error) {
	status := services.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("Service call failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseIDList(raw string) ([]uint, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, ok := parseID(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
