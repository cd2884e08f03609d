package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"webp2gif/internal/app"
	"webp2gif/internal/app/models"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
	"webp2gif/internal/utils/validate"
)

type BatchDelivery struct {
	batchUsecase app.BatchUsecase
	out          io.Writer
	mu           sync.Mutex
}

func CreateBatchDelivery(batchUsecase app.BatchUsecase, out io.Writer) *BatchDelivery {
	return &BatchDelivery{
		batchUsecase: batchUsecase,
		out:          out,
	}
}

// Run collects webp inputs from the arguments, converts them as one batch
// and prints per-file progress plus a closing summary table to the output
// writer. Directory arguments are expanded only when scanDirs is set.
func (d *BatchDelivery) Run(ctx context.Context, args []string, scanDirs bool) (*models.BatchSummary, error) {
	const funcName = "BatchDelivery.Run"
	logger.Debug("collecting batch inputs",
		zap.String("function", funcName),
		zap.Int("arg_count", len(args)),
		zap.Bool("scan_dirs", scanDirs),
	)

	paths, err := d.collectInputs(args, scanDirs)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(d.out, "converting %d files\n", len(paths))

	d.batchUsecase.OnProgress(d.printProgress)
	summary, err := d.batchUsecase.Run(ctx, paths)
	if err != nil {
		logger.Error("batch did not run",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	d.printSummary(summary)
	return summary, nil
}

func (d *BatchDelivery) collectInputs(args []string, scanDirs bool) ([]string, error) {
	const funcName = "BatchDelivery.collectInputs"

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			if !scanDirs {
				fmt.Fprintf(d.out, "skipping directory %s (use -d to convert directories)\n", arg)
				logger.Warn("directory argument without scan flag",
					zap.String("function", funcName),
					zap.String("path", arg),
				)
				continue
			}
			paths = append(paths, d.scanDirectory(arg)...)
			continue
		}

		// Missing files stay in the batch so the failure lands in the
		// summary next to the other results.
		if err := validate.ValidateWebPPath(arg); err != nil {
			fmt.Fprintf(d.out, "skipping non-webp file: %s\n", arg)
			logger.Warn("skipping non-webp input",
				zap.String("function", funcName),
				zap.String("path", arg),
			)
			continue
		}

		abs, err := filepath.Abs(arg)
		if err != nil {
			fmt.Fprintf(d.out, "skipping %s: %v\n", arg, err)
			logger.Warn("failed to absolutize input path",
				zap.String("function", funcName),
				zap.String("path", arg),
				zap.Error(err),
			)
			continue
		}
		paths = append(paths, abs)
	}

	if len(paths) == 0 {
		fmt.Fprintln(d.out, "no webp files to convert")
		logger.Warn("no usable inputs",
			zap.String("function", funcName),
			zap.Int("arg_count", len(args)),
		)
		return nil, errs.ErrNoInput
	}

	return paths, nil
}

func (d *BatchDelivery) scanDirectory(dir string) []string {
	const funcName = "BatchDelivery.scanDirectory"

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(d.out, "skipping directory %s: %v\n", dir, err)
		logger.Warn("failed to read directory",
			zap.String("function", funcName),
			zap.String("path", dir),
			zap.Error(err),
		)
		return nil
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if validate.ValidateWebPPath(p) != nil {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			logger.Warn("failed to absolutize input path",
				zap.String("function", funcName),
				zap.String("path", p),
				zap.Error(err),
			)
			continue
		}
		paths = append(paths, abs)
	}

	logger.Debug("directory scanned",
		zap.String("function", funcName),
		zap.String("path", dir),
		zap.Int("webp_files", len(paths)),
	)
	return paths
}

func (d *BatchDelivery) printProgress(p models.ProgressUpdate) {
	if p.LastResult == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	r := p.LastResult
	name := filepath.Base(r.InputPath)
	if r.State == models.JobStateDone {
		fmt.Fprintf(d.out, "(%d/%d) %s -> %s (%s, %s)\n",
			p.Completed, p.Total, name, r.OutputPath, r.Backend, r.Elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(d.out, "(%d/%d) %s failed: %v\n", p.Completed, p.Total, name, r.Err)
}

func (d *BatchDelivery) printSummary(summary *models.BatchSummary) {
	d.mu.Lock()
	defer d.mu.Unlock()

	table := tablewriter.NewWriter(d.out)
	table.SetHeader([]string{"File", "Result", "Backend", "Output", "Time"})

	for _, entry := range summary.Entries {
		name := filepath.Base(entry.InputPath)
		switch entry.State {
		case models.JobStateDone:
			table.Append([]string{
				name,
				"done",
				string(entry.Result.Backend),
				entry.Result.OutputPath,
				entry.Result.Elapsed.Round(time.Millisecond).String(),
			})
		case models.JobStateFailed:
			table.Append([]string{
				name,
				"failed",
				"",
				entry.Result.Err.Error(),
				entry.Result.Elapsed.Round(time.Millisecond).String(),
			})
		default:
			table.Append([]string{name, "cancelled", "", "", ""})
		}
	}
	table.Render()

	fmt.Fprintf(d.out, "conversion finished: %d succeeded, %d failed, %d cancelled, %d total (%s)\n",
		summary.Succeeded, summary.Failed, summary.Cancelled, summary.Total,
		summary.Elapsed.Round(time.Millisecond))
}
