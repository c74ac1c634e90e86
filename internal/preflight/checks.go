package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"wallpaper-manager/internal/config"
	"wallpaper-manager/internal/deps"
	"wallpaper-manager/internal/player"
)

// CheckDirectoryAccess verifies that the directory exists and is readable
// (and writable when writable is set).
func CheckDirectoryAccess(name, path string, writable bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	label := "read ok"
	if writable {
		mode |= unix.W_OK
		label = "read/write ok"
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, label)}
}

// CheckPlayer reports whether a player answers on the control socket. A
// stopped player is not a failure; select-wallpaper simply needs one.
func CheckPlayer(ctx context.Context, socket string) Result {
	const name = "Player socket"
	if _, err := os.Lstat(socket); err != nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not running)", socket)}
	}
	if player.NewClient(socket).Alive(ctx) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (running)", socket)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (stale socket, daemon will replace it)", socket)}
}

// CheckSystemDeps evaluates every external program named in the config.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	bins := cfg.Binaries
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     bins.FFmpeg,
			Description: "Required for thumbnails and rescaled copies",
		},
		{
			Name:        "FFprobe",
			Command:     deps.ResolveFFprobe(bins.FFmpeg, bins.FFprobe),
			Description: "Required for resolution probing",
		},
		{
			Name:        "Picker",
			Command:     bins.Picker,
			Description: "Required for select-wallpaper (thumbnail grid)",
			Optional:    true,
		},
		{
			Name:        "Wrapper",
			Command:     bins.Wrapper,
			Description: "Required for daemon (desktop window embedding)",
		},
		{
			Name:        "Player",
			Command:     bins.Player,
			Description: "Required for daemon (video playback)",
		},
	}
	return deps.CheckBinaries(requirements)
}
