package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"wallpaper-manager/internal/logging"
	"wallpaper-manager/internal/wallpaper"
)

// statfsFunc allows tests to stub filesystem stats.
type statfsFunc func(path string) (total uint64, free uint64, err error)

// CacheStats describes one cache directory.
type CacheStats struct {
	Kind        string    `json:"kind"`
	Dir         string    `json:"dir"`
	Entries     int       `json:"entries"`
	TotalBytes  int64     `json:"total_bytes"`
	Orphans     []string  `json:"orphans"`
	OrphanBytes int64     `json:"orphan_bytes"`
	NewestEntry time.Time `json:"newest_entry"`
}

// Stats describes current cache usage. Orphans are computed from names alone:
// a thumbnail is an orphan when no source file has its stem, a rescaled copy
// when no source file has its name. Nothing is probed or removed.
type Stats struct {
	SourceFiles  int        `json:"source_files"`
	Thumbnails   CacheStats `json:"thumbnails"`
	Rescaled     CacheStats `json:"rescaled"`
	FreeBytes    uint64     `json:"free_bytes"`
	TotalFSBytes uint64     `json:"total_fs_bytes"`
	FreeRatio    float64    `json:"free_ratio"`
}

// Stats inspects dirs without modifying anything.
func (r *Reconciler) Stats(ctx context.Context, dirs Dirs) (Stats, error) {
	return collectStats(ctx, r, dirs, realStatfs)
}

func collectStats(ctx context.Context, r *Reconciler, dirs Dirs, statfs statfsFunc) (Stats, error) {
	var s Stats
	dirs, err := dirs.absolute()
	if err != nil {
		return s, err
	}

	entries, err := wallpaper.Scan(dirs.Source, wallpaper.WithExclude(r.exclude))
	if err != nil {
		return s, dirError(ErrSourceDirUnreadable, "scan source", dirs.Source, err)
	}
	liveThumbnails := liveSet{}
	liveRescaled := liveSet{}
	for entry, err := range entries {
		if err != nil {
			return s, dirError(ErrSourceDirUnreadable, "scan source", dirs.Source, err)
		}
		s.SourceFiles++
		liveThumbnails[filepath.Join(dirs.Thumbnails, entry.Stem+thumbnailExt)] = struct{}{}
		liveRescaled[filepath.Join(dirs.Rescaled, entry.Name)] = struct{}{}
	}

	if s.Thumbnails, err = r.cacheStats(ctx, "thumbnail", dirs.Thumbnails, liveThumbnails); err != nil {
		return s, err
	}
	if s.Rescaled, err = r.cacheStats(ctx, "rescaled", dirs.Rescaled, liveRescaled); err != nil {
		return s, err
	}

	total, free, err := statfs(dirs.Thumbnails)
	if err != nil {
		r.logger.WarnContext(ctx, "cache filesystem stats unavailable",
			logging.String("cache_dir", dirs.Thumbnails),
			logging.Error(err),
			logging.String(logging.FieldEventType, "cache_statfs_failed"),
		)
		return s, nil
	}
	s.TotalFSBytes = total
	s.FreeBytes = free
	s.FreeRatio = 1.0
	if total > 0 {
		s.FreeRatio = float64(free) / float64(total)
	}
	return s, nil
}

func (r *Reconciler) cacheStats(ctx context.Context, kind, dir string, live liveSet) (CacheStats, error) {
	stats := CacheStats{Kind: kind, Dir: dir, Orphans: []string{}}
	entries, err := wallpaper.Scan(dir)
	if err != nil {
		return stats, dirError(ErrCacheDirUnreadable, "scan cache", dir, err)
	}
	for entry, err := range entries {
		if err != nil {
			return stats, dirError(ErrCacheDirUnreadable, "scan cache", dir, err)
		}
		size, modTime, ok := r.fileInfo(ctx, entry.Path)
		if !ok {
			continue
		}
		stats.Entries++
		stats.TotalBytes += size
		if modTime.After(stats.NewestEntry) {
			stats.NewestEntry = modTime
		}
		if _, isLive := live[entry.Path]; !isLive {
			stats.Orphans = append(stats.Orphans, entry.Name)
			stats.OrphanBytes += size
		}
	}
	slices.SortFunc(stats.Orphans, strings.Compare)
	return stats, nil
}

func (r *Reconciler) fileInfo(ctx context.Context, path string) (int64, time.Time, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		r.logger.WarnContext(ctx, "skip cache entry; excluded from stats",
			logging.String("cache_path", path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "cache_entry_skipped"),
			logging.String(logging.FieldErrorHint, "inspect cache directory permissions or remove the entry"),
		)
		return 0, time.Time{}, false
	}
	return info.Size(), info.ModTime(), true
}

func realStatfs(path string) (uint64, uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return total, free, nil
}
