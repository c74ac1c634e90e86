package preflight

import (
	"context"

	"wallpaper-manager/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the filesystem and player checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Wallpapers directory", cfg.WallpapersDir, false),
		CheckDirectoryAccess("Thumbnail cache", cfg.ThumbnailDir(), true),
		CheckDirectoryAccess("Rescaled cache", cfg.RescaledDir(), true),
	}
	results = append(results, CheckPlayer(ctx, cfg.SocketPath))
	return results
}

// Failed counts the results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
