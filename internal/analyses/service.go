package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/ner"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/storage/object"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/signals"
	"resume-analyzer/internal/similarity"
	"resume-analyzer/internal/uploads"
)

// Service runs the analysis pipeline.
type Service struct {
	Store  object.ObjectStore
	Tagger ner.Tagger
	Logger *zap.Logger
}

// NewService constructs a Service. The tagger is shared by all calls.
func NewService(store object.ObjectStore, tagger ner.Tagger, logger *zap.Logger) *Service {
	return &Service{Store: store, Tagger: tagger, Logger: telemetry.OrNop(logger)}
}

// Analyze stages both uploads, extracts their text and evaluates them.
// Staged files are removed before it returns, whatever the outcome.
func (s *Service) Analyze(ctx context.Context, in Input) (result Result, err error) {
	start := time.Now()
	logger := s.Logger.With(
		zap.String("analysis_id", in.ID),
		zap.String("request_id", requestIDFromContext(ctx)),
	)

	metrics.IncAnalyzeStarted()
	defer func() {
		metrics.ObserveAnalyzeDuration(time.Since(start))
		if err != nil {
			metrics.IncAnalyzeFailed()
			logger.Warn("analysis.failed", zap.Error(err), zap.Int64("duration_ms", time.Since(start).Milliseconds()))
			return
		}
		metrics.IncAnalyzeCompleted()
		logger.Info("analysis.completed",
			zap.Int("skills", len(result.Skills)),
			zap.Int("experience", len(result.Experience)),
			zap.Float64("score", result.Score),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}()

	ws := uploads.NewWorkspace(s.Store, logger)
	defer ws.Release(ctx)

	var resumeText, jobText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := s.stageAndExtract(gctx, ws, in.Resume, extract.KindPDF)
		if err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		resumeText = text
		return nil
	})
	g.Go(func() error {
		text, err := s.stageAndExtract(gctx, ws, in.JobDescription, extract.KindText)
		if err != nil {
			return fmt.Errorf("job description: %w", err)
		}
		jobText = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	logger.Debug("analysis.extracted",
		zap.Int("resume_bytes", len(resumeText)),
		zap.Int("job_bytes", len(jobText)),
	)
	return s.Evaluate(ctx, resumeText, jobText)
}

func (s *Service) stageAndExtract(ctx context.Context, ws *uploads.Workspace, src uploads.Source, kind extract.Kind) (string, error) {
	staged, err := ws.Stage(ctx, src)
	if err != nil {
		return "", err
	}
	return extract.FromStore(ctx, s.Store, staged.Key, kind)
}

// Evaluate derives skills and experience from the resume and scores it
// against the job description.
func (s *Service) Evaluate(ctx context.Context, resumeText, jobText string) (Result, error) {
	if s.Tagger == nil {
		return Result{}, errors.New("analyses: no tagger configured")
	}

	var (
		ents  []ner.Entity
		score float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.Tagger.Tag(gctx, resumeText)
		if err != nil {
			return fmt.Errorf("tag resume with %s: %w", s.Tagger.Name(), err)
		}
		ents = found
		return nil
	})
	g.Go(func() error {
		score = similarity.Score(resumeText, jobText)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		Skills:     signals.Skills(ents),
		Experience: signals.Experience(ents),
		Score:      score,
	}, nil
}
