package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"webp2gif/internal/app"
	"webp2gif/internal/app/delivery"
	"webp2gif/internal/app/output"
	"webp2gif/internal/app/repository"
	"webp2gif/internal/app/usecase"
	"webp2gif/internal/config"
	"webp2gif/internal/converter/ffmpeg"
	"webp2gif/internal/converter/gifenc"
	"webp2gif/internal/converter/webpdec"
	"webp2gif/internal/utils/logger"
)

var rootCmd = &cli.Command{
	Name:  "webp2gif",
	Usage: "Convert WebP images and animations to GIF",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "dir",
			Usage:   "Convert all webp files in given directories",
			Aliases: []string{"d"},
		},
		&cli.BoolFlag{
			Name:  "native",
			Usage: "Skip ffmpeg and use the built-in encoder only",
		},
	},
	Action: action,
}

func action(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		cli.ShowAppHelpAndExit(c, 0)
	}

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("error initializing config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogMode, cfg.LogFile); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded successfully")
	logger.Debug("debug mode enabled",
		zap.String("log_mode", cfg.LogMode),
		zap.Int("worker_count", cfg.WorkerCount),
		zap.String("external_tool", cfg.ExternalTool),
	)

	var externalConverter app.ExternalConverter
	if !cfg.ExternalToolDisabled && !c.Bool("native") {
		externalConverter = ffmpeg.CreateTool(cfg.ExternalTool, cfg.ExternalToolTimeout)
	}

	batchRepository := repository.CreateBatchRepository()
	batchUsecase := usecase.CreateBatchUsecase(
		batchRepository,
		webpdec.CreateExtractor(),
		gifenc.CreateEncoder(),
		externalConverter,
		output.CreateResolver(),
		cfg.WorkerCount,
	)
	batchDelivery := delivery.CreateBatchDelivery(batchUsecase, os.Stdout)

	summary, err := batchDelivery.Run(ctx, args, c.Bool("dir"))
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
