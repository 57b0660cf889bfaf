package analyses

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/ner"
	"resume-analyzer/internal/shared/storage/object/local"
)

// stubTagger tags dates with the real recognizer and a fixed product list.
type stubTagger struct {
	products []string
	err      error
}

func (s stubTagger) Name() string { return "stub" }

func (s stubTagger) Tag(ctx context.Context, text string) ([]ner.Entity, error) {
	if s.err != nil {
		return nil, s.err
	}
	ents := ner.FindDates(text)
	for _, p := range s.products {
		if idx := strings.Index(text, p); idx >= 0 {
			ents = append(ents, ner.Entity{Text: p, Label: ner.LabelProduct, Start: idx, End: idx + len(p)})
		}
	}
	return ents, nil
}

type part struct {
	field    string
	filename string
	body     []byte
}

func multipartRequest(t *testing.T, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(p.body); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func setupRouter(t *testing.T, tagger ner.Tagger, maxUploadBytes int64) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := local.New(dir)
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	svc := NewService(store, tagger, nil)

	router := gin.New()
	NewHandler(svc, maxUploadBytes).RegisterRoutes(router)
	return router, dir
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected %s to be empty, found %d entries", dir, len(entries))
	}
}
