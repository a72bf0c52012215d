package server

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/documents"
	"kyc-backend/internal/extract"
	"kyc-backend/internal/kyc"
	"kyc-backend/internal/llm"
	"kyc-backend/internal/llm/gemini"
	"kyc-backend/internal/ocr"
	"kyc-backend/internal/shared/config"
	"kyc-backend/internal/shared/metrics"
	"kyc-backend/internal/shared/server/middleware"
	"kyc-backend/internal/shared/server/respond"
	"kyc-backend/internal/shared/storage/db"
	"kyc-backend/internal/shared/storage/object"
	localstore "kyc-backend/internal/shared/storage/object/local"
	s3store "kyc-backend/internal/shared/storage/object/s3"
	"kyc-backend/internal/shared/telemetry"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	store := newObjectStore(cfg)

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Warn("failed to connect database, falling back to memory", map[string]any{"error": err.Error()})
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				telemetry.Warn("failed to run migrations, falling back to memory", map[string]any{"error": err.Error()})
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var docRepo documents.Repo
	if sqlDB != nil {
		docRepo = &documents.PGRepo{DB: sqlDB}
	} else {
		docRepo = documents.NewMemoryRepo()
	}
	docSvc := &documents.Service{Store: store, Repo: docRepo}
	docHandler := documents.NewHandler(docSvc)

	var kycRepo kyc.Repo
	if sqlDB != nil {
		kycRepo = &kyc.PGRepo{DB: sqlDB}
	} else {
		kycRepo = kyc.NewMemoryRepo()
	}

	extractor := extract.New(ocr.NewEngine(ocr.Config{
		Tesseract: cfg.OCRTesseract,
		Pdftoppm:  cfg.OCRPdftoppm,
		Language:  cfg.OCRLanguage,
		DPI:       cfg.OCRDPI,
	}))

	llmClient := newLLMClient(cfg)
	kycSvc := &kyc.Service{Docs: docSvc, Extractor: extractor, Repo: kycRepo}
	kycHandler := &kyc.Handler{
		Svc:        kycSvc,
		Normalizer: &kyc.Normalizer{LLM: llmClient},
		Summarizer: &kyc.Summarizer{LLM: llmClient},
		Assistant:  &kyc.Assistant{LLM: llmClient, Repo: kycRepo},
	}

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authed := api.Group("")
	authed.Use(middleware.Identity())
	docHandler.RegisterRoutes(authed)
	kycHandler.RegisterRoutes(authed)

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err == nil {
			return store
		}
		telemetry.Warn("failed to init s3 store, falling back to local", map[string]any{"error": err.Error()})
	}
	return localstore.New(cfg.LocalStoreDir)
}

func newLLMClient(cfg config.Config) llm.Client {
	if cfg.LLMProvider == "gemini" {
		client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
		if err == nil {
			return client
		}
		telemetry.Warn("gemini client not configured", map[string]any{"error": err.Error()})
	}
	return llm.PlaceholderClient{}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
