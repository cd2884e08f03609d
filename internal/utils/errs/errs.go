package errs

import "errors"

var (
	ErrUnreadableFormat = errors.New("source is not a decodable WebP image")
	ErrIOUnavailable    = errors.New("file system operation failed")
	ErrEncodingFailed   = errors.New("gif encoding failed")
	ErrExternalTool     = errors.New("external converter failed")
	ErrBatchInFlight    = errors.New("a batch is already running")
	ErrNoInput          = errors.New("no convertible inputs submitted")
)
