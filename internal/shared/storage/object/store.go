package object

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"resume-analyzer/internal/shared/util"
)

// ObjectStore stages uploaded payloads for the length of one request.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

const maxExtLen = 8

// NewKey returns a fresh storage key for an upload. The client file name
// only contributes its extension, so concurrent uploads sharing a name
// never collide.
func NewKey(fileName string) string {
	key := uuid.NewString()
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return key
	}
	ext := strings.ToLower(path.Ext(sanitized))
	if len(ext) < 2 || len(ext) > maxExtLen || !isAlnum(ext[1:]) {
		return key
	}
	return key + ext
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
