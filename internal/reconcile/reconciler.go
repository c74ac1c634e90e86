package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"wallpaper-manager/internal/logging"
	"wallpaper-manager/internal/media"
	"wallpaper-manager/internal/services"
	"wallpaper-manager/internal/wallpaper"
)

const thumbnailExt = ".jpg"

// Prober reads the native resolution of a media file.
type Prober interface {
	ProbeResolution(ctx context.Context, path string) (media.Resolution, error)
}

// Transcoder produces cache entries from a source file.
type Transcoder interface {
	GenerateThumbnail(ctx context.Context, src, dst string) error
	Rescale(ctx context.Context, src string, res media.Resolution, dst string) error
}

// Dirs names the source directory and the two cache directories of a pass.
type Dirs struct {
	Source     string
	Thumbnails string
	Rescaled   string
}

func (d Dirs) absolute() (Dirs, error) {
	var out Dirs
	var err error
	if out.Source, err = filepath.Abs(d.Source); err != nil {
		return Dirs{}, err
	}
	if out.Thumbnails, err = filepath.Abs(d.Thumbnails); err != nil {
		return Dirs{}, err
	}
	if out.Rescaled, err = filepath.Abs(d.Rescaled); err != nil {
		return Dirs{}, err
	}
	return out, nil
}

// Report summarizes a completed or aborted pass.
type Report struct {
	PassID            string        `json:"pass_id"`
	Scanned           int           `json:"scanned"`
	ThumbnailsCreated int           `json:"thumbnails_created"`
	RescaledCreated   int           `json:"rescaled_created"`
	Probes            int           `json:"probes"`
	RemovedThumbnails []string      `json:"removed_thumbnails"`
	RemovedRescaled   []string      `json:"removed_rescaled"`
	Duration          time.Duration `json:"duration_ns"`
}

// Removed returns the total number of orphans deleted.
func (r Report) Removed() int {
	return len(r.RemovedThumbnails) + len(r.RemovedRescaled)
}

// Reconciler runs reconciliation passes.
type Reconciler struct {
	prober     Prober
	transcoder Transcoder
	logger     *slog.Logger
	exclude    []string
	remove     func(string) error
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger routes pass logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithExclude skips source file names matching any of the patterns.
func WithExclude(patterns []string) Option {
	return func(r *Reconciler) {
		r.exclude = slices.Clone(patterns)
	}
}

// New constructs a Reconciler around the given prober and transcoder.
func New(prober Prober, transcoder Transcoder, opts ...Option) *Reconciler {
	r := &Reconciler{
		prober:     prober,
		transcoder: transcoder,
		remove:     os.Remove,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "reconcile")
	return r
}

type liveSet map[string]struct{}

// Reconcile runs one pass over dirs. The returned report is populated up to
// the point of failure when an error is returned.
func (r *Reconciler) Reconcile(ctx context.Context, dirs Dirs, target media.Resolution) (Report, error) {
	start := time.Now()

	passID, ok := services.PassIDFromContext(ctx)
	if !ok {
		passID = uuid.NewString()
		ctx = services.WithPassID(ctx, passID)
	}
	report := Report{PassID: passID}
	logger := logging.WithContext(ctx, r.logger)

	dirs, err := dirs.absolute()
	if err != nil {
		return report, services.Wrap(services.ErrFilesystem, "reconcile", "resolve directories", "", err)
	}

	logger.Info("reconciliation pass started",
		logging.String("source_dir", dirs.Source),
		logging.String("target_resolution", target.String()),
	)

	liveThumbnails := liveSet{}
	liveRescaled := liveSet{}
	if err := r.mark(ctx, logger, dirs, target, liveThumbnails, liveRescaled, &report); err != nil {
		report.Duration = time.Since(start)
		return report, err
	}

	report.RemovedThumbnails, err = r.sweep(logger, dirs.Thumbnails, "thumbnail", liveThumbnails)
	if err != nil {
		report.Duration = time.Since(start)
		return report, err
	}
	report.RemovedRescaled, err = r.sweep(logger, dirs.Rescaled, "rescaled", liveRescaled)
	report.Duration = time.Since(start)
	if err != nil {
		return report, err
	}

	logger.Info("reconciliation pass complete",
		logging.Int("scanned", report.Scanned),
		logging.Int("thumbnails_created", report.ThumbnailsCreated),
		logging.Int("rescaled_created", report.RescaledCreated),
		logging.Int("probes", report.Probes),
		logging.Int("removed", report.Removed()),
		logging.Duration("duration", report.Duration),
	)
	return report, nil
}

func (r *Reconciler) mark(ctx context.Context, logger *slog.Logger, dirs Dirs, target media.Resolution, liveThumbnails, liveRescaled liveSet, report *Report) error {
	entries, err := wallpaper.Scan(dirs.Source, wallpaper.WithExclude(r.exclude))
	if err != nil {
		return dirError(ErrSourceDirUnreadable, "scan source", dirs.Source, err)
	}

	for entry, err := range entries {
		if err != nil {
			return dirError(ErrSourceDirUnreadable, "scan source", dirs.Source, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Scanned++

		thumbnailPath := filepath.Join(dirs.Thumbnails, entry.Stem+thumbnailExt)
		rescaledPath := filepath.Join(dirs.Rescaled, entry.Name)
		fileLogger := logger.With(logging.String("source_file", entry.Name))

		if NeedsThumbnail(thumbnailPath) {
			fileLogger.Info("generating thumbnail", logging.String("cache_path", thumbnailPath))
			if err := r.transcoder.GenerateThumbnail(ctx, entry.Path, thumbnailPath); err != nil {
				return toolError(ErrTranscodeFailed, entry.Path, err)
			}
			report.ThumbnailsCreated++
		} else {
			fileLogger.Debug("thumbnail present", logging.String("cache_path", thumbnailPath))
		}

		if !entryExists(rescaledPath) {
			native, err := r.prober.ProbeResolution(ctx, entry.Path)
			report.Probes++
			if err != nil {
				return toolError(ErrProbeFailed, entry.Path, err)
			}
			if NeedsRescale(native, target, rescaledPath) {
				fileLogger.Info("rescaling wallpaper",
					logging.String("native_resolution", native.String()),
					logging.String("target_resolution", target.String()),
					logging.String("cache_path", rescaledPath),
				)
				if err := r.transcoder.Rescale(ctx, entry.Path, target, rescaledPath); err != nil {
					return toolError(ErrTranscodeFailed, entry.Path, err)
				}
				report.RescaledCreated++
			} else {
				fileLogger.Debug("native resolution matches target", logging.String("native_resolution", native.String()))
			}
		}

		liveThumbnails[thumbnailPath] = struct{}{}
		liveRescaled[rescaledPath] = struct{}{}
	}
	return nil
}

// sweep removes every regular file in dir that is not a live key. Orphans are
// collected before any removal so the listing is not mutated mid-read.
func (r *Reconciler) sweep(logger *slog.Logger, dir, kind string, live liveSet) ([]string, error) {
	entries, err := wallpaper.Scan(dir)
	if err != nil {
		return nil, dirError(ErrCacheDirUnreadable, "scan cache", dir, err)
	}

	var orphans []string
	for entry, err := range entries {
		if err != nil {
			return nil, dirError(ErrCacheDirUnreadable, "scan cache", dir, err)
		}
		if _, ok := live[entry.Path]; ok {
			continue
		}
		orphans = append(orphans, entry.Path)
	}

	removed := make([]string, 0, len(orphans))
	for _, path := range orphans {
		if err := r.remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, &DeletionError{Path: path, Err: err}
		}
		removed = append(removed, path)
		logger.Info("removed orphaned cache entry",
			logging.String("cache_kind", kind),
			logging.String("cache_path", path),
		)
	}
	return removed, nil
}

// String renders a one-line summary of the report.
func (r Report) String() string {
	return fmt.Sprintf("scanned %d, thumbnails created %d, rescaled created %d, probes %d, removed %d",
		r.Scanned, r.ThumbnailsCreated, r.RescaledCreated, r.Probes, r.Removed())
}
