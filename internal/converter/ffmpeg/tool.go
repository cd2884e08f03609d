package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
	"webp2gif/internal/utils/validate"
)

const (
	DefaultBinary  = "ffmpeg"
	DefaultTimeout = 120 * time.Second
)

// Tool is the capability handle for an ffmpeg-style converter on the host.
// It is constructed once at startup and handed to the batch runner; the
// PATH probe runs lazily on first use and its verdict is cached for the
// life of the value, so a tool installed or removed mid-run is not noticed.
type Tool struct {
	binary  string
	timeout time.Duration

	probeOnce sync.Once
	path      string
	available bool
}

func CreateTool(binary string, timeout time.Duration) *Tool {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Tool{binary: binary, timeout: timeout}
}

// Available reports the cached detection verdict, probing PATH on the first
// call. Safe for concurrent use.
func (t *Tool) Available() bool {
	const funcName = "Tool.Available"

	t.probeOnce.Do(func() {
		path, err := exec.LookPath(t.binary)
		if err != nil {
			logger.Info("external converter not found, native encoder only",
				zap.String("function", funcName),
				zap.String("binary", t.binary))
			return
		}

		t.path = path
		t.available = true
		logger.Info("external converter detected",
			zap.String("function", funcName),
			zap.String("path", path))
	})

	return t.available
}

// Convert runs the tool as
//
//	ffmpeg -hide_banner -loglevel error -y -i <src> <dst>
//
// under the configured timeout. The destination is overwritten. Every
// failure, including a subprocess kill on timeout and an implausible output
// file, comes back wrapped in ErrExternalTool.
func (t *Tool) Convert(ctx context.Context, srcPath, dstPath string) error {
	const funcName = "Tool.Convert"

	if !t.Available() {
		return fmt.Errorf("%w: %s is not installed", errs.ErrExternalTool, t.binary)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.path,
		"-hide_banner", "-loglevel", "error", "-y", "-i", srcPath, dstPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Warn("external converter timed out",
				zap.String("function", funcName),
				zap.String("src", srcPath),
				zap.Duration("timeout", t.timeout))
			return fmt.Errorf("%w: timed out after %s", errs.ErrExternalTool, t.timeout)
		}

		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		logger.Warn("external converter failed",
			zap.String("function", funcName),
			zap.String("src", srcPath),
			zap.String("stderr", msg))
		return fmt.Errorf("%w: %s", errs.ErrExternalTool, msg)
	}

	if err := checkOutput(dstPath); err != nil {
		return err
	}

	logger.Debug("external conversion finished",
		zap.String("function", funcName),
		zap.String("src", srcPath),
		zap.String("dst", dstPath),
		zap.Duration("elapsed", elapsed))

	return nil
}

// checkOutput guards against a zero-exit run that still produced garbage:
// the file must exist, be non-empty and start with a GIF signature.
func checkOutput(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: output not produced: %v", errs.ErrExternalTool, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: output not readable: %v", errs.ErrExternalTool, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: output is empty", errs.ErrExternalTool)
	}

	head := make([]byte, 6)
	if _, err := io.ReadFull(f, head); err != nil {
		return fmt.Errorf("%w: output too short to be a gif", errs.ErrExternalTool)
	}
	if !validate.SniffGIF(head) {
		return fmt.Errorf("%w: output has no gif signature", errs.ErrExternalTool)
	}

	return nil
}
