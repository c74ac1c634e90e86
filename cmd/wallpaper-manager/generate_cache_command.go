package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wallpaper-manager/internal/config"
	"wallpaper-manager/internal/deps"
	"wallpaper-manager/internal/logging"
	"wallpaper-manager/internal/media/ffmpeg"
	"wallpaper-manager/internal/media/ffprobe"
	"wallpaper-manager/internal/reconcile"
)

func newGenerateCacheCommand(ctx *commandContext) *cobra.Command {
	var watch bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "generate-cache",
		Short: "Create missing thumbnails and rescaled copies and remove orphans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureWallpapers()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}

			lock, err := reconcile.AcquirePassLock(cfg.CacheDir)
			if err != nil {
				return err
			}
			defer lock.Release()

			rec := newReconciler(cfg, logger)
			dirs := cacheDirs(cfg)
			out := cmd.OutOrStdout()

			if !watch {
				report, err := rec.Reconcile(cmd.Context(), dirs, cfg.Target())
				if err != nil {
					return err
				}
				return printReport(cmd, out, report, jsonOutput)
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.InfoContext(sigCtx, "watching wallpapers directory", logging.String("dir", cfg.WallpapersDir))
			return reconcile.Watch(sigCtx, cfg.WallpapersDir, reconcile.DefaultDebounce, func(passCtx context.Context) error {
				report, err := rec.Reconcile(passCtx, dirs, cfg.Target())
				if err != nil {
					logger.ErrorContext(passCtx, "reconciliation pass failed", logging.Error(err))
					return nil
				}
				return printReport(cmd, out, report, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and reconcile whenever the wallpapers directory changes")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the pass report as JSON")
	return cmd
}

func newReconciler(cfg *config.Config, logger *slog.Logger) *reconcile.Reconciler {
	prober := ffprobe.NewProber(deps.ResolveFFprobe(cfg.Binaries.FFmpeg, cfg.Binaries.FFprobe))
	transcoder := ffmpeg.NewTranscoder(cfg.Binaries.FFmpeg, cfg.Thumbnails.Width)
	return reconcile.New(prober, transcoder,
		reconcile.WithLogger(logger),
		reconcile.WithExclude(cfg.Exclude),
	)
}

func cacheDirs(cfg *config.Config) reconcile.Dirs {
	return reconcile.Dirs{
		Source:     cfg.WallpapersDir,
		Thumbnails: cfg.ThumbnailDir(),
		Rescaled:   cfg.RescaledDir(),
	}
}

func printReport(cmd *cobra.Command, out io.Writer, report reconcile.Report, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(cmd, report)
	}
	fmt.Fprintf(out, "Cache up to date: %s\n", report)
	for _, path := range report.RemovedThumbnails {
		fmt.Fprintf(out, "  removed thumbnail %s\n", path)
	}
	for _, path := range report.RemovedRescaled {
		fmt.Fprintf(out, "  removed rescaled copy %s\n", path)
	}
	return nil
}
