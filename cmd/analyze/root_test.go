package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/extract/pdftest"
	"resume-analyzer/internal/ner"
	"resume-analyzer/internal/shared/config"
)

type datesOnly struct{}

func (datesOnly) Name() string { return "dates" }

func (datesOnly) Tag(_ context.Context, text string) ([]ner.Entity, error) {
	return ner.FindDates(text), nil
}

func stubFactory(context.Context, config.Config, *zap.Logger) (ner.Tagger, error) {
	return datesOnly{}, nil
}

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.pdf")
	job := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(resume, pdftest.Build("Go engineer 2019-2024"), 0o600))
	require.NoError(t, os.WriteFile(job, []byte("Go engineer wanted"), 0o600))
	return resume, job
}

func TestAnalyzeJSON(t *testing.T) {
	resume, job := writeInputs(t)

	var out bytes.Buffer
	cmd := newRootCmd(stubFactory)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--resume", resume, "--job", job})
	require.NoError(t, cmd.Execute())

	var resp analyses.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, []string{"2019-2024"}, resp.Feedback.Experience)
	assert.Empty(t, resp.Feedback.Skills)
	assert.Greater(t, resp.Feedback.Score, 0.0)
}

func TestAnalyzeMarkdown(t *testing.T) {
	resume, job := writeInputs(t)

	var out bytes.Buffer
	cmd := newRootCmd(stubFactory)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-r", resume, "-j", job, "--format", "markdown"})
	require.NoError(t, cmd.Execute())

	assert.True(t, strings.HasPrefix(out.String(), "# Resume Analysis"))
}

func TestAnalyzeRejectsUnknownFormat(t *testing.T) {
	resume, job := writeInputs(t)

	cmd := newRootCmd(stubFactory)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-r", resume, "-j", job, "-f", "xml"})
	assert.Error(t, cmd.Execute())
}

func TestAnalyzeRequiresFlags(t *testing.T) {
	cmd := newRootCmd(stubFactory)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--resume", "r.pdf"})
	assert.Error(t, cmd.Execute())
}

func TestAnalyzeInvalidResume(t *testing.T) {
	_, job := writeInputs(t)
	bad := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o600))

	cmd := newRootCmd(stubFactory)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-r", bad, "-j", job})
	assert.Error(t, cmd.Execute())
}
