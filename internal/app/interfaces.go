package app

import (
	"context"

	"webp2gif/internal/app/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

// FrameExtractor turns a WebP file into composited full-canvas frames plus
// animation metadata. Errors wrap errs.ErrUnreadableFormat or
// errs.ErrIOUnavailable.
type FrameExtractor interface {
	Extract(ctx context.Context, path string) (*models.Extraction, error)
}

// Encoder assembles extracted frames into GIF bytes. Errors wrap
// errs.ErrEncodingFailed.
type Encoder interface {
	Encode(frames []models.Frame, meta models.AnimationMeta) ([]byte, error)
}

// ExternalConverter is the capability handle for a host conversion tool.
// Available reports the cached detection outcome; Convert runs the tool and
// wraps failures in errs.ErrExternalTool.
type ExternalConverter interface {
	Available() bool
	Convert(ctx context.Context, srcPath, dstPath string) error
}

// PathResolver claims the destination path for a source file. The returned
// path exists as an empty file owned by the caller.
type PathResolver interface {
	Resolve(srcPath string) (string, error)
}

// BatchRepository is the ledger shared by the batch runner and progress
// queries. Results are write-once.
type BatchRepository interface {
	Begin(paths []string) ([]*models.BatchEntry, error)
	MarkRunning(jobID string)
	MarkState(jobID string, state models.JobState)
	MarkCancelled(jobID string)
	Complete(jobID string, result *models.ConversionResult)
	Snapshot() *models.BatchState
	Summary() *models.BatchSummary
	Finish()
}

// BatchUsecase drives whole-batch conversion.
type BatchUsecase interface {
	Run(ctx context.Context, paths []string) (*models.BatchSummary, error)
	Progress() *models.BatchState
	OnProgress(fn func(models.ProgressUpdate))
}
