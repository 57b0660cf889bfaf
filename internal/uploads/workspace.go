package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"time"

	"go.uber.org/zap"

	"resume-analyzer/internal/shared/storage/object"
	"resume-analyzer/internal/shared/telemetry"
)

const releaseTimeout = 10 * time.Second

// Source is a client supplied file: its original name and a way to read it.
type Source struct {
	FileName string
	Open     func() (io.ReadCloser, error)
}

// FromFileHeader adapts a multipart file part.
func FromFileHeader(fh *multipart.FileHeader) Source {
	return Source{
		FileName: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Staged is a source after it was written to the store.
type Staged struct {
	FileName string
	Key      string
	Size     int64
}

// Workspace tracks every object staged during one request so they can be
// removed together. Callers defer Release right after NewWorkspace.
type Workspace struct {
	store  object.ObjectStore
	logger *zap.Logger

	mu       sync.Mutex
	keys     []string
	released bool
}

func NewWorkspace(store object.ObjectStore, logger *zap.Logger) *Workspace {
	logger = telemetry.OrNop(logger)
	return &Workspace{store: store, logger: logger}
}

// Stage copies src into the store under a generated key.
func (w *Workspace) Stage(ctx context.Context, src Source) (Staged, error) {
	if src.Open == nil {
		return Staged{}, errors.New("stage: source has no payload")
	}
	w.mu.Lock()
	released := w.released
	w.mu.Unlock()
	if released {
		return Staged{}, errors.New("stage: workspace already released")
	}

	body, err := src.Open()
	if err != nil {
		return Staged{}, fmt.Errorf("stage %q: open: %w", src.FileName, err)
	}
	defer body.Close()

	key, size, err := w.store.Save(ctx, src.FileName, body)
	if err != nil {
		return Staged{}, fmt.Errorf("stage %q: %w", src.FileName, err)
	}

	w.mu.Lock()
	w.keys = append(w.keys, key)
	w.mu.Unlock()

	return Staged{FileName: src.FileName, Key: key, Size: size}, nil
}

// Release deletes every staged object. It runs on a context detached from
// ctx's cancellation so an aborted request still cleans up. Failures are
// logged only.
func (w *Workspace) Release(ctx context.Context) {
	w.mu.Lock()
	keys := w.keys
	w.keys = nil
	w.released = true
	w.mu.Unlock()

	if len(keys) == 0 {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	for _, key := range keys {
		if err := w.store.Delete(cleanupCtx, key); err != nil {
			w.logger.Warn("upload.cleanup_failed", zap.String("key", key), zap.Error(err))
			continue
		}
		w.logger.Debug("upload.deleted", zap.String("key", key))
	}
}

// Keys returns the keys currently staged.
func (w *Workspace) Keys() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.keys...)
}
