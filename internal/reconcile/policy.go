package reconcile

import (
	"errors"
	"io/fs"
	"os"

	"wallpaper-manager/internal/media"
)

// NeedsThumbnail reports whether nothing exists at the thumbnail cache path.
func NeedsThumbnail(thumbnailPath string) bool {
	return !entryExists(thumbnailPath)
}

// NeedsRescale reports whether a rescaled copy must be generated: the native
// resolution differs from the target and nothing exists at the cache path.
func NeedsRescale(native, target media.Resolution, rescaledPath string) bool {
	return native != target && !entryExists(rescaledPath)
}

// entryExists treats any stat failure other than not-exist as existing so an
// unreadable entry is left alone rather than regenerated.
func entryExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
