package ner

import (
	"context"
	"fmt"
	"os"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"resume-analyzer/internal/shared/telemetry"
)

// ModelTagger runs the prose statistical model together with the date and
// lexicon recognizers. The model is loaded once and shared by every call.
type ModelTagger struct {
	model   *prose.Model
	lexicon *Lexicon
	logger  *zap.Logger
}

// NewModelTagger loads the built-in prose model, or the one stored in
// modelDir when it is set.
func NewModelTagger(modelDir string, lexicon *Lexicon, logger *zap.Logger) (tagger *ModelTagger, err error) {
	logger = telemetry.OrNop(logger)
	defer func() {
		if rec := recover(); rec != nil {
			tagger = nil
			err = fmt.Errorf("load ner model: %v", rec)
		}
	}()

	var model *prose.Model
	if modelDir != "" {
		info, statErr := os.Stat(modelDir)
		if statErr != nil {
			return nil, fmt.Errorf("load ner model: %w", statErr)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("load ner model: %s is not a directory", modelDir)
		}
		model = prose.ModelFromDisk(modelDir)
	} else {
		// NewDocument attaches the default model when none is given.
		doc, docErr := prose.NewDocument("", prose.WithSegmentation(false))
		if docErr != nil {
			return nil, fmt.Errorf("load ner model: %w", docErr)
		}
		model = doc.Model
	}

	logger.Info("ner.model_loaded",
		zap.String("model_dir", modelDir),
		zap.Int("lexicon_size", lexicon.Len()),
	)
	return &ModelTagger{model: model, lexicon: lexicon, logger: logger}, nil
}

func (t *ModelTagger) Name() string { return "prose" }

// Tag labels text. Date and lexicon spans take precedence over model spans
// they overlap.
func (t *ModelTagger) Tag(ctx context.Context, text string) (ents []Entity, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			ents = nil
			err = fmt.Errorf("%w: %v", ErrTagging, rec)
		}
	}()

	doc, err := prose.NewDocument(text,
		prose.UsingModel(t.model),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTagging, err)
	}

	found := doc.Entities()
	spans := make([]span, 0, len(found))
	for _, ent := range found {
		spans = append(spans, span{text: ent.Text, label: ent.Label})
	}

	return merge(FindDates(text), t.lexicon.Find(text), locate(text, spans)), nil
}
