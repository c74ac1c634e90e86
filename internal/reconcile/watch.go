package reconcile

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"wallpaper-manager/internal/services"
)

// DefaultDebounce is the quiet period Watch waits for after a change.
const DefaultDebounce = 2 * time.Second

// Watch runs fn once, then again each time dir has been quiet for debounce
// after a change, until ctx is cancelled. Runs are serial. An error from fn
// stops the watch and is returned.
func Watch(ctx context.Context, dir string, debounce time.Duration, fn func(context.Context) error) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "reconcile", "watch", dir, err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return services.Wrap(services.ErrFilesystem, "reconcile", "watch", dir, err)
	}

	if err := fn(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(debounce)
			fire = timer.C
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return services.Wrap(services.ErrFilesystem, "reconcile", "watch", dir, werr)
		case <-fire:
			fire = nil
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}
