package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"webp2gif/internal/app/models"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
)

// BatchRepository is the in-memory ledger of the batch in flight. It is the
// single structure shared between the runner goroutines and progress
// queries; every access goes through the mutex, and a job's result is
// accepted exactly once.
type BatchRepository struct {
	entries   []*models.BatchEntry
	byID      map[string]int
	completed int
	succeeded int
	failed    int
	cancelled int
	current   string
	last      *models.ConversionResult
	running   bool
	started   time.Time
	mu        sync.Mutex
}

func CreateBatchRepository() *BatchRepository {
	return &BatchRepository{
		byID: make(map[string]int),
	}
}

// Begin registers the submitted paths in order and opens the batch.
// Duplicate paths become independent entries. A second Begin while a batch
// is running is refused.
func (r *BatchRepository) Begin(paths []string) ([]*models.BatchEntry, error) {
	const funcName = "BatchRepository.Begin"
	logger.Debug("attempting to open batch",
		zap.String("function", funcName),
		zap.Int("paths", len(paths)),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		logger.Warn("batch already in flight",
			zap.String("function", funcName),
			zap.Int("total", len(r.entries)),
		)
		return nil, fmt.Errorf("%w: %d jobs still registered", errs.ErrBatchInFlight, len(r.entries))
	}

	r.entries = make([]*models.BatchEntry, 0, len(paths))
	r.byID = make(map[string]int, len(paths))
	r.completed = 0
	r.succeeded = 0
	r.failed = 0
	r.cancelled = 0
	r.current = ""
	r.last = nil
	r.running = true
	r.started = time.Now()

	for _, path := range paths {
		entry := &models.BatchEntry{
			JobID:     uuid.New().String(),
			InputPath: path,
			State:     models.JobStatePending,
		}
		r.byID[entry.JobID] = len(r.entries)
		r.entries = append(r.entries, entry)
	}

	logger.Info("batch opened",
		zap.String("function", funcName),
		zap.Int("total", len(r.entries)),
	)

	return r.copyEntryPointers(), nil
}

// MarkRunning records which file a worker picked up.
func (r *BatchRepository) MarkRunning(jobID string) {
	const funcName = "BatchRepository.MarkRunning"

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.lookup(funcName, jobID)
	if entry == nil {
		return
	}

	r.current = entry.InputPath

	logger.Debug("job picked up",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
		zap.String("input", entry.InputPath),
	)
}

// MarkState moves a job through its pipeline stages. Terminal entries are
// left untouched.
func (r *BatchRepository) MarkState(jobID string, state models.JobState) {
	const funcName = "BatchRepository.MarkState"

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.lookup(funcName, jobID)
	if entry == nil {
		return
	}

	if isTerminal(entry.State) {
		logger.Warn("state change on settled job ignored",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.String("current_state", string(entry.State)),
			zap.String("requested_state", string(state)),
		)
		return
	}

	entry.State = state

	logger.Debug("job state updated",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
		zap.String("state", string(state)),
	)
}

// MarkCancelled settles a job that never ran (or was abandoned between
// stages). Cancelled entries keep no result.
func (r *BatchRepository) MarkCancelled(jobID string) {
	const funcName = "BatchRepository.MarkCancelled"

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.lookup(funcName, jobID)
	if entry == nil {
		return
	}

	if isTerminal(entry.State) {
		logger.Warn("cancel of settled job ignored",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.String("current_state", string(entry.State)),
		)
		return
	}

	entry.State = models.JobStateCancelled
	r.cancelled++

	logger.Info("job cancelled",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
		zap.String("input", entry.InputPath),
	)
}

// Complete stores a job's terminal result. The first write wins; anything
// after is logged and dropped, the stored result is never mutated.
func (r *BatchRepository) Complete(jobID string, result *models.ConversionResult) {
	const funcName = "BatchRepository.Complete"

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.lookup(funcName, jobID)
	if entry == nil {
		return
	}

	if result == nil {
		logger.Warn("nil result dropped",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
		)
		return
	}

	if entry.Result != nil || isTerminal(entry.State) {
		logger.Warn("duplicate result dropped",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.String("state", string(entry.State)),
		)
		return
	}

	entry.Result = result
	entry.State = result.State
	r.completed++
	r.last = result

	switch result.State {
	case models.JobStateDone:
		r.succeeded++
	case models.JobStateFailed:
		r.failed++
	}

	logger.Info("job settled",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
		zap.String("input", result.InputPath),
		zap.String("state", string(result.State)),
		zap.String("backend", string(result.Backend)),
		zap.Duration("elapsed", result.Elapsed),
		zap.Int("completed", r.completed),
		zap.Int("total", len(r.entries)),
	)
}

// Snapshot returns a copy of the ledger for progress queries.
func (r *BatchRepository) Snapshot() *models.BatchState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &models.BatchState{
		Total:       len(r.entries),
		Completed:   r.completed,
		Succeeded:   r.succeeded,
		Failed:      r.failed,
		Cancelled:   r.cancelled,
		CurrentFile: r.current,
		LastResult:  r.last,
		Entries:     r.copyEntries(),
	}
}

// Summary closes over the final tallies once the batch settles.
func (r *BatchRepository) Summary() *models.BatchSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &models.BatchSummary{
		Total:     len(r.entries),
		Succeeded: r.succeeded,
		Failed:    r.failed,
		Cancelled: r.cancelled,
		Elapsed:   time.Since(r.started),
		Entries:   r.copyEntries(),
	}
}

// Finish releases the batch so a later Begin can reuse the repository. The
// settled entries stay readable until then.
func (r *BatchRepository) Finish() {
	const funcName = "BatchRepository.Finish"

	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	r.current = ""

	logger.Info("batch closed",
		zap.String("function", funcName),
		zap.Int("total", len(r.entries)),
		zap.Int("succeeded", r.succeeded),
		zap.Int("failed", r.failed),
		zap.Int("cancelled", r.cancelled),
		zap.Duration("elapsed", time.Since(r.started)),
	)
}

func (r *BatchRepository) lookup(funcName, jobID string) *models.BatchEntry {
	idx, exists := r.byID[jobID]
	if !exists {
		logger.Warn("unknown job id",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
		)
		return nil
	}

	return r.entries[idx]
}

func (r *BatchRepository) copyEntries() []models.BatchEntry {
	out := make([]models.BatchEntry, len(r.entries))
	for i, e := range r.entries {
		out[i] = *e
	}
	return out
}

func (r *BatchRepository) copyEntryPointers() []*models.BatchEntry {
	out := make([]*models.BatchEntry, len(r.entries))
	for i, e := range r.entries {
		clone := *e
		out[i] = &clone
	}
	return out
}

func isTerminal(state models.JobState) bool {
	switch state {
	case models.JobStateDone, models.JobStateFailed, models.JobStateCancelled:
		return true
	}
	return false
}
