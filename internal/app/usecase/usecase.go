package usecase

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"webp2gif/internal/app"
	"webp2gif/internal/app/models"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
)

type BatchUsecase struct {
	batchRepository   app.BatchRepository
	frameExtractor    app.FrameExtractor
	encoder           app.Encoder
	externalConverter app.ExternalConverter
	pathResolver      app.PathResolver
	workers           int

	mu         sync.Mutex
	onProgress func(models.ProgressUpdate)
}

func CreateBatchUsecase(
	batchRepository app.BatchRepository,
	frameExtractor app.FrameExtractor,
	encoder app.Encoder,
	externalConverter app.ExternalConverter,
	pathResolver app.PathResolver,
	workers int,
) *BatchUsecase {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchUsecase{
		batchRepository:   batchRepository,
		frameExtractor:    frameExtractor,
		encoder:           encoder,
		externalConverter: externalConverter,
		pathResolver:      pathResolver,
		workers:           workers,
	}
}

// OnProgress registers a callback invoked after every settled job. The
// callback runs on worker goroutines and must not block.
func (u *BatchUsecase) OnProgress(fn func(models.ProgressUpdate)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.onProgress = fn
}

func (u *BatchUsecase) Progress() *models.BatchState {
	return u.batchRepository.Snapshot()
}

// Run converts every path in the batch and blocks until all jobs settle.
// Per-file failures are recorded in the summary, not returned; the error
// return covers batch-level refusals such as a batch already in flight.
func (u *BatchUsecase) Run(ctx context.Context, paths []string) (*models.BatchSummary, error) {
	const funcName = "BatchUsecase.Run"
	logger.Info("starting batch conversion",
		zap.String("function", funcName),
		zap.Int("file_count", len(paths)),
		zap.Int("workers", u.workers),
	)

	entries, err := u.batchRepository.Begin(paths)
	if err != nil {
		logger.Error("failed to open batch",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}
	defer u.batchRepository.Finish()

	g := errgroup.Group{}
	g.SetLimit(u.workers)

	for _, entry := range entries {
		if ctx.Err() != nil {
			u.batchRepository.MarkCancelled(entry.JobID)
			continue
		}
		g.Go(func() error {
			u.runJob(ctx, entry)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("worker pool failed",
			zap.String("function", funcName),
			zap.Error(err),
		)
	}

	summary := u.batchRepository.Summary()
	logger.Info("batch conversion finished",
		zap.String("function", funcName),
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("cancelled", summary.Cancelled),
		zap.Duration("elapsed", summary.Elapsed),
	)

	return summary, nil
}

func (u *BatchUsecase) runJob(ctx context.Context, entry *models.BatchEntry) {
	const funcName = "BatchUsecase.runJob"
	started := time.Now()
	dstPath := ""

	defer func() {
		if r := recover(); r != nil {
			logger.Error("conversion job panicked",
				zap.String("function", funcName),
				zap.String("job_id", entry.JobID),
				zap.String("input_path", entry.InputPath),
				zap.Any("panic", r),
			)
			u.failJob(entry, dstPath, started, fmt.Errorf("conversion panicked: %v", r))
		}
	}()

	select {
	case <-ctx.Done():
		u.batchRepository.MarkCancelled(entry.JobID)
		return
	default:
	}

	u.batchRepository.MarkRunning(entry.JobID)
	logger.Debug("starting conversion job",
		zap.String("function", funcName),
		zap.String("job_id", entry.JobID),
		zap.String("input_path", entry.InputPath),
	)

	u.batchRepository.MarkState(entry.JobID, models.JobStateExtracting)
	extraction, err := u.frameExtractor.Extract(ctx, entry.InputPath)
	if err != nil {
		if ctx.Err() != nil {
			u.batchRepository.MarkCancelled(entry.JobID)
			return
		}
		logger.Warn("failed to extract frames",
			zap.String("function", funcName),
			zap.String("job_id", entry.JobID),
			zap.String("input_path", entry.InputPath),
			zap.Error(err),
		)
		u.failJob(entry, "", started, err)
		return
	}

	if ctx.Err() != nil {
		u.batchRepository.MarkCancelled(entry.JobID)
		return
	}

	dstPath, err = u.pathResolver.Resolve(entry.InputPath)
	if err != nil {
		logger.Warn("failed to claim output path",
			zap.String("function", funcName),
			zap.String("job_id", entry.JobID),
			zap.String("input_path", entry.InputPath),
			zap.Error(err),
		)
		u.failJob(entry, "", started, err)
		return
	}

	u.batchRepository.MarkState(entry.JobID, models.JobStateEncoding)

	backend := models.BackendNative
	converted := false
	if u.externalConverter != nil && u.externalConverter.Available() {
		if err := u.externalConverter.Convert(ctx, entry.InputPath, dstPath); err != nil {
			if ctx.Err() != nil {
				u.discardOutput(dstPath)
				u.batchRepository.MarkCancelled(entry.JobID)
				return
			}
			logger.Warn("external tool failed, falling back to native encoder",
				zap.String("function", funcName),
				zap.String("job_id", entry.JobID),
				zap.String("input_path", entry.InputPath),
				zap.Error(err),
			)
		} else {
			backend = models.BackendExternal
			converted = true
		}
	}

	if !converted {
		data, err := u.encoder.Encode(extraction.Frames, extraction.Meta)
		if err != nil {
			u.failJob(entry, dstPath, started, err)
			return
		}

		if ctx.Err() != nil {
			u.discardOutput(dstPath)
			u.batchRepository.MarkCancelled(entry.JobID)
			return
		}

		u.batchRepository.MarkState(entry.JobID, models.JobStateWriting)
		if err := os.WriteFile(dstPath, data, 0o644); err != nil {
			logger.Warn("failed to write output file",
				zap.String("function", funcName),
				zap.String("job_id", entry.JobID),
				zap.String("output_path", dstPath),
				zap.Error(err),
			)
			u.failJob(entry, dstPath, started, fmt.Errorf("%w: %v", errs.ErrIOUnavailable, err))
			return
		}
	}

	result := &models.ConversionResult{
		JobID:      entry.JobID,
		InputPath:  entry.InputPath,
		OutputPath: dstPath,
		Backend:    backend,
		State:      models.JobStateDone,
		FrameCount: extraction.Meta.FrameCount,
		Elapsed:    time.Since(started),
	}
	dstPath = ""
	u.batchRepository.Complete(entry.JobID, result)
	u.notifyProgress(result)

	logger.Info("conversion job finished",
		zap.String("function", funcName),
		zap.String("job_id", entry.JobID),
		zap.String("input_path", result.InputPath),
		zap.String("output_path", result.OutputPath),
		zap.String("backend", string(result.Backend)),
		zap.Int("frames", result.FrameCount),
		zap.Duration("elapsed", result.Elapsed),
	)
}

func (u *BatchUsecase) failJob(entry *models.BatchEntry, dstPath string, started time.Time, convErr error) {
	if dstPath != "" {
		u.discardOutput(dstPath)
	}
	result := &models.ConversionResult{
		JobID:     entry.JobID,
		InputPath: entry.InputPath,
		State:     models.JobStateFailed,
		Err:       convErr,
		Elapsed:   time.Since(started),
	}
	u.batchRepository.Complete(entry.JobID, result)
	u.notifyProgress(result)
}

// discardOutput removes a claimed output file after a failed or cancelled
// job so reruns can take the name again.
func (u *BatchUsecase) discardOutput(path string) {
	const funcName = "BatchUsecase.discardOutput"
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to remove claimed output file",
			zap.String("function", funcName),
			zap.String("path", path),
			zap.Error(err),
		)
	}
}

func (u *BatchUsecase) notifyProgress(result *models.ConversionResult) {
	u.mu.Lock()
	fn := u.onProgress
	u.mu.Unlock()
	if fn == nil {
		return
	}

	state := u.batchRepository.Snapshot()
	fn(models.ProgressUpdate{
		Total:       state.Total,
		Completed:   state.Completed,
		CurrentFile: state.CurrentFile,
		LastResult:  result,
	})
}
