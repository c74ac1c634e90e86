package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"wallpaper-manager/internal/services"
)

// LockFileName is the pass lock file created in the cache directory.
const LockFileName = ".wallpaper-manager.lock"

// PassLock is an exclusive advisory lock held for the duration of a pass.
type PassLock struct {
	lock *flock.Flock
}

// AcquirePassLock takes the pass lock in cacheDir without blocking. It fails
// with ErrPassInProgress when another process holds the lock.
func AcquirePassLock(cacheDir string) (*PassLock, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "reconcile", "create cache dir", cacheDir, err)
	}
	lockPath := filepath.Join(cacheDir, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "reconcile", "acquire lock", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrPassInProgress, lockPath)
	}
	return &PassLock{lock: lock}, nil
}

// Path returns the lock file path.
func (l *PassLock) Path() string {
	if l == nil {
		return ""
	}
	return l.lock.Path()
}

// Release unlocks the pass lock.
func (l *PassLock) Release() error {
	if l == nil {
		return nil
	}
	return l.lock.Unlock()
}
