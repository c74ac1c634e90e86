package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"wallpaper-manager/internal/reconcile"
)

const orphanPreview = 3

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the thumbnail and rescaled caches",
	}
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache usage and orphaned entries",
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

			rec := reconcile.New(nil, nil,
				reconcile.WithLogger(logger),
				reconcile.WithExclude(cfg.Exclude),
			)
			stats, err := rec.Stats(cmd.Context(), cacheDirs(cfg))
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, stats)
			}
			printCacheStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print stats as JSON")
	return cmd
}

func printCacheStats(out io.Writer, stats reconcile.Stats) {
	rows := make([][]string, 0, 2)
	for _, c := range []reconcile.CacheStats{stats.Thumbnails, stats.Rescaled} {
		rows = append(rows, []string{
			c.Kind,
			strconv.Itoa(c.Entries),
			humanize.IBytes(uint64(c.TotalBytes)),
			orphanSummary(c),
			newestLabel(c),
		})
	}
	fmt.Fprintf(out, "Wallpapers: %d\n", stats.SourceFiles)
	fmt.Fprintln(out, renderTable(
		[]string{"Cache", "Entries", "Size", "Orphans", "Updated"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	))
	if stats.TotalFSBytes > 0 {
		fmt.Fprintf(out, "Disk: %s free of %s (%.1f%%)\n",
			humanize.IBytes(stats.FreeBytes), humanize.IBytes(stats.TotalFSBytes), stats.FreeRatio*100)
	}
	if len(stats.Thumbnails.Orphans)+len(stats.Rescaled.Orphans) > 0 {
		fmt.Fprintln(out, "Run generate-cache to remove orphaned entries.")
	}
}

func orphanSummary(c reconcile.CacheStats) string {
	if len(c.Orphans) == 0 {
		return "none"
	}
	preview := c.Orphans
	if len(preview) > orphanPreview {
		preview = preview[:orphanPreview]
	}
	summary := fmt.Sprintf("%d (%s): %s", len(c.Orphans), humanize.IBytes(uint64(c.OrphanBytes)), strings.Join(preview, ", "))
	if extra := len(c.Orphans) - len(preview); extra > 0 {
		summary += fmt.Sprintf(" +%d more", extra)
	}
	return summary
}

func newestLabel(c reconcile.CacheStats) string {
	if c.NewestEntry.IsZero() {
		return "never"
	}
	return humanize.Time(c.NewestEntry)
}
