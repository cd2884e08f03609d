package models

import (
	"image"
	"time"
)

type JobState string

const (
	JobStatePending    JobState = "pending"
	JobStateExtracting JobState = "extracting"
	JobStateEncoding   JobState = "encoding"
	JobStateWriting    JobState = "writing"
	JobStateDone       JobState = "done"
	JobStateFailed     JobState = "failed"
	JobStateCancelled  JobState = "cancelled"
)

type Backend string

const (
	BackendNative   Backend = "native"
	BackendExternal Backend = "external"
)

// SourceImage describes a submitted file after the container scan.
type SourceImage struct {
	Path     string
	Size     int64
	Animated bool
}

// Frame is one full-canvas snapshot of the animation timeline. Image always
// covers the whole canvas; placement and disposal are already applied.
type Frame struct {
	Index    int
	Image    *image.NRGBA
	Duration time.Duration
}

type AnimationMeta struct {
	Width      int
	Height     int
	FrameCount int
	// LoopCount keeps the stored WebP semantics: 0 means repeat forever,
	// n means play the animation n times.
	LoopCount int
	Duration  time.Duration
	Animated  bool
}

// Extraction is the frame extractor's output for one source file.
type Extraction struct {
	Source SourceImage
	Meta   AnimationMeta
	Frames []Frame
}

// ConversionResult records the terminal outcome of one job. It is written
// exactly once and never mutated afterwards. State is JobStateDone or
// JobStateFailed; Err is nil on success and wraps one of the errs sentinels
// on failure.
type ConversionResult struct {
	JobID      string
	InputPath  string
	OutputPath string
	Backend    Backend
	State      JobState
	Err        error
	FrameCount int
	Elapsed    time.Duration
}

// BatchEntry tracks one submitted path through the batch. Cancelled entries
// keep a nil Result.
type BatchEntry struct {
	JobID     string
	InputPath string
	State     JobState
	Result    *ConversionResult
}

// BatchState is a point-in-time snapshot of the running batch for progress
// queries. Entries preserve submission order.
type BatchState struct {
	Total       int
	Completed   int
	Succeeded   int
	Failed      int
	Cancelled   int
	CurrentFile string
	LastResult  *ConversionResult
	Entries     []BatchEntry
}

// ProgressUpdate is pushed to the registered progress callback every time a
// job settles.
type ProgressUpdate struct {
	Total       int
	Completed   int
	CurrentFile string
	LastResult  *ConversionResult
}

// BatchSummary is returned once the whole batch has settled.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Cancelled int
	Elapsed   time.Duration
	Entries   []BatchEntry
}
