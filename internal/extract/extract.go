package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"resume-analyzer/internal/shared/storage/object"
)

var (
	// ErrInvalidPDF is returned when a payload cannot be parsed as a PDF.
	ErrInvalidPDF = errors.New("invalid pdf")
	// ErrInvalidEncoding is returned when a text payload is not UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 text")
)

// Kind selects the extractor used for a staged object.
type Kind int

const (
	KindPDF Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// PDF returns the plain text of every page, in page order, concatenated
// without a separator. Pages that are missing or undecodable contribute
// nothing.
// Library used: github.com/ledongthuc/pdf.
func PDF(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// the parser panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var buf strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(pageText)
	}
	return buf.String(), nil
}

// Text reads r fully and requires valid UTF-8. A leading byte order mark is dropped.
func Text(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		return "", ErrInvalidEncoding
	}
	return string(raw), nil
}

// FromStore extracts text from a staged object.
func FromStore(ctx context.Context, store object.ObjectStore, key string, kind Kind) (string, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("extract %s key=%s: %w", kind, key, err)
	}
	defer body.Close()

	switch kind {
	case KindText:
		return Text(ctx, body)
	case KindPDF:
		raw, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("extract %s key=%s: read: %w", kind, key, err)
		}
		return PDF(ctx, bytes.NewReader(raw), int64(len(raw)))
	default:
		return "", fmt.Errorf("extract: unsupported kind %s", kind)
	}
}

// PDFFile extracts text from a PDF on disk.
func PDFFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return PDF(ctx, f, info.Size())
}

// TextFile reads a UTF-8 text file from disk.
func TextFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Text(ctx, f)
}
