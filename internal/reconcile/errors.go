package reconcile

import (
	"errors"
	"fmt"

	"wallpaper-manager/internal/services"
)

var (
	ErrSourceDirUnreadable = errors.New("source directory unreadable")
	ErrCacheDirUnreadable  = errors.New("cache directory unreadable")
	ErrTranscodeFailed     = errors.New("transcode failed")
	ErrProbeFailed         = errors.New("probe failed")
	ErrDeletionFailed      = errors.New("deletion failed")
	ErrPassInProgress      = errors.New("another reconciliation pass is running")
)

// DeletionError reports an orphaned cache entry that could not be removed.
type DeletionError struct {
	Path string
	Err  error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("%s: %s: remove %s: %v", services.ErrFilesystem, ErrDeletionFailed, e.Path, e.Err)
}

func (e *DeletionError) Unwrap() []error {
	return []error{ErrDeletionFailed, services.ErrFilesystem, e.Err}
}

func dirError(kind error, operation, dir string, err error) error {
	return services.Wrap(services.ErrFilesystem, "reconcile", operation, dir, fmt.Errorf("%w: %w", kind, err))
}

func toolError(kind error, path string, err error) error {
	return fmt.Errorf("%w: %s: %w", kind, path, err)
}
