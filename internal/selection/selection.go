package selection

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"wallpaper-manager/internal/logging"
	"wallpaper-manager/internal/services"
	"wallpaper-manager/internal/wallpaper"
)

// ErrStaleCache reports a thumbnail with no matching source file.
var ErrStaleCache = fmt.Errorf("%w: no wallpaper matches the selected thumbnail; run generate-cache", services.ErrSelection)

// Picker returns one file chosen from a directory.
type Picker interface {
	SelectOne(ctx context.Context, dir string) (string, error)
}

// Loader hands a file to the running player.
type Loader interface {
	LoadFile(ctx context.Context, path string) error
}

// Dirs names the directories the workflow reads.
type Dirs struct {
	Source     string
	Thumbnails string
	Rescaled   string
}

// Request controls one selection.
type Request struct {
	Static  bool
	Exclude []string
}

// Result describes what was loaded.
type Result struct {
	Picked   string `json:"picked"`
	Source   string `json:"source"`
	Loaded   string `json:"loaded"`
	Rescaled bool   `json:"rescaled"`
}

// Workflow wires a picker to a player.
type Workflow struct {
	picker Picker
	loader Loader
	logger *slog.Logger
}

// New constructs a Workflow.
func New(picker Picker, loader Loader, logger *slog.Logger) *Workflow {
	return &Workflow{
		picker: picker,
		loader: loader,
		logger: logging.NewComponentLogger(logger, "selection"),
	}
}

// Run asks the picker for a wallpaper and loads the matching playback file.
func (w *Workflow) Run(ctx context.Context, dirs Dirs, req Request) (Result, error) {
	browse := dirs.Thumbnails
	if req.Static {
		browse = dirs.Source
	}
	w.logger.DebugContext(ctx, "opening picker", logging.String("dir", browse))

	picked, err := w.picker.SelectOne(ctx, browse)
	if err != nil {
		return Result{}, err
	}

	result := Result{Picked: picked}
	if req.Static {
		result.Source = picked
		result.Loaded = picked
	} else {
		source, err := w.resolveSource(picked, dirs.Source, req.Exclude)
		if err != nil {
			return Result{}, err
		}
		result.Source = source.Path
		result.Loaded, result.Rescaled, err = PlaybackPath(source, dirs.Rescaled)
		if err != nil {
			return Result{}, err
		}
	}

	if err := w.loader.LoadFile(ctx, result.Loaded); err != nil {
		return Result{}, err
	}
	w.logger.InfoContext(ctx, "selected wallpaper",
		logging.String("wallpaper", filepath.Base(result.Source)),
		logging.String("loaded", result.Loaded),
		logging.Bool("rescaled", result.Rescaled),
	)
	return result, nil
}

func (w *Workflow) resolveSource(picked, sourceDir string, exclude []string) (wallpaper.Entry, error) {
	stem, err := wallpaper.Stem(picked)
	if err != nil {
		return wallpaper.Entry{}, services.Wrap(services.ErrSelection, "selection", "resolve selection", picked, err)
	}
	entry, ok, err := wallpaper.FindByStem(sourceDir, stem, wallpaper.WithExclude(exclude))
	if err != nil {
		return wallpaper.Entry{}, services.Wrap(services.ErrFilesystem, "selection", "list wallpapers", sourceDir, err)
	}
	if !ok {
		return wallpaper.Entry{}, fmt.Errorf("%w (stem %q)", ErrStaleCache, stem)
	}
	return entry, nil
}

// PlaybackPath prefers the rescaled copy of entry and falls back to the source.
func PlaybackPath(entry wallpaper.Entry, rescaledDir string) (string, bool, error) {
	candidate := filepath.Join(rescaledDir, entry.Name)
	info, err := os.Stat(candidate)
	switch {
	case err == nil && info.Mode().IsRegular():
		return candidate, true, nil
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return entry.Path, false, nil
	default:
		return "", false, services.Wrap(services.ErrFilesystem, "selection", "inspect rescaled copy", candidate, err)
	}
}
