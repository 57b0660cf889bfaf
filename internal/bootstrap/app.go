package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/ner"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/server"
	"resume-analyzer/internal/shared/storage/object"
	localstore "resume-analyzer/internal/shared/storage/object/local"
	s3store "resume-analyzer/internal/shared/storage/object/s3"
	"resume-analyzer/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Logger          *zap.Logger
	Router          *gin.Engine
	Store           object.ObjectStore
	Tagger          ner.Tagger
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	Health          *health.Service
}

// Build prepares every dependency and wires the router.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = telemetry.OrNop(logger)

	store, err := BuildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tagger, err := BuildTagger(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	svc := analyses.NewService(store, tagger, logger)
	app := &App{
		Config:          cfg,
		Logger:          logger,
		Store:           store,
		Tagger:          tagger,
		AnalysesService: svc,
		AnalysisHandler: analyses.NewHandler(svc, cfg.MaxUploadBytes),
		Health:          health.NewService(tagger.Name()),
	}
	app.Router = server.NewRouter(server.Deps{
		Config:   cfg,
		Logger:   logger,
		Analyses: app.AnalysisHandler,
		Health:   app.Health,
	})

	logger.Info("bootstrap.ready",
		zap.String("env", cfg.Env),
		zap.String("upload_store", cfg.UploadStoreType),
		zap.String("tagger", tagger.Name()),
	)
	return app, nil
}

// BuildStore returns the staging store selected by UPLOAD_STORE. The local
// store creates its directory.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.UploadStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("UPLOAD_STORE=s3: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.UploadDir)
	}
}

// BuildTagger constructs the tagger selected by TAGGER. It is built once and
// shared by every request.
func BuildTagger(ctx context.Context, cfg config.Config, logger *zap.Logger) (ner.Tagger, error) {
	switch cfg.Tagger {
	case "gemini":
		tagger, err := ner.NewGeminiTagger(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			return nil, fmt.Errorf("TAGGER=gemini: %w", err)
		}
		return tagger, nil
	default:
		lexicon, err := ner.LoadLexicon(cfg.LexiconFile)
		if err != nil {
			return nil, err
		}
		return ner.NewModelTagger(cfg.NERModelDir, lexicon, logger)
	}
}
