package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/bootstrap"
	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/ner"
	"resume-analyzer/internal/report"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/telemetry"
)

const app = "analyze"

type taggerFactory func(ctx context.Context, cfg config.Config, logger *zap.Logger) (ner.Tagger, error)

type options struct {
	resume string
	job    string
	format string
	debug  bool
}

// newRootCmd builds the command. A nil factory uses the configured tagger.
func newRootCmd(newTagger taggerFactory) *cobra.Command {
	if newTagger == nil {
		newTagger = bootstrap.BuildTagger
	}
	opts := &options{}

	cmd := &cobra.Command{
		Use:          app + " --resume resume.pdf --job job.txt",
		Short:        "Compare a PDF resume with a plain text job description",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts, newTagger)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "path to the resume PDF")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "path to the job description text file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json or markdown")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options, newTagger taggerFactory) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != "json" && format != "markdown" && format != "md" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	logger, err := telemetry.NewCLI(opts.debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	resumeText, err := extract.PDFFile(ctx, opts.resume)
	if err != nil {
		return fmt.Errorf("read resume %s: %w", opts.resume, err)
	}
	jobText, err := extract.TextFile(ctx, opts.job)
	if err != nil {
		return fmt.Errorf("read job description %s: %w", opts.job, err)
	}

	tagger, err := newTagger(ctx, config.Load(), logger)
	if err != nil {
		return fmt.Errorf("build tagger: %w", err)
	}

	svc := analyses.NewService(nil, tagger, logger)
	result, err := svc.Evaluate(ctx, resumeText, jobText)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analyses.Response{Feedback: result})
	}
	return report.WriteMarkdown(out, report.Summary{
		Skills:     result.Skills,
		Experience: result.Experience,
		Score:      result.Score,
	})
}
