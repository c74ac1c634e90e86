package player

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"wallpaper-manager/internal/logging"
	"wallpaper-manager/internal/media"
	"wallpaper-manager/internal/services"
)

// ErrAlreadyRunning reports a live player already answering on the socket.
var ErrAlreadyRunning = fmt.Errorf("%w: player already running", services.ErrSocket)

const (
	defaultWrapper        = "xwinwrap"
	defaultPlayer         = "mpv"
	defaultStartupTimeout = 10 * time.Second
	pollInterval          = 50 * time.Millisecond
)

// Offset positions the player window.
type Offset struct {
	X int
	Y int
}

// Options configures a player launch.
type Options struct {
	Socket         string
	Resolution     media.Resolution
	Offset         Offset
	Wrapper        string
	Player         string
	StartupTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Socket) == "" {
		o.Socket = DefaultSocket
	}
	if !o.Resolution.Valid() {
		o.Resolution = media.Resolution{Width: 1920, Height: 1080}
	}
	if strings.TrimSpace(o.Wrapper) == "" {
		o.Wrapper = defaultWrapper
	}
	if strings.TrimSpace(o.Player) == "" {
		o.Player = defaultPlayer
	}
	if o.StartupTimeout <= 0 {
		o.StartupTimeout = defaultStartupTimeout
	}
	return o
}

// Geometry renders the X11 geometry string WxH+X+Y.
func Geometry(res media.Resolution, off Offset) string {
	return fmt.Sprintf("%dx%d+%d+%d", res.Width, res.Height, off.X, off.Y)
}

// Args returns the wrapper arguments that embed the player into the desktop
// background with an IPC socket.
func Args(opts Options) []string {
	opts = opts.withDefaults()
	return []string{
		"-ov", "-b", "-fs",
		"-g", Geometry(opts.Resolution, opts.Offset),
		"--",
		opts.Player,
		"-wid", "WID",
		"--idle=",
		"--no-osc",
		"--no-osd-bar",
		"--loop-file",
		"--player-operation-mode=cplayer",
		"--no-audio",
		"--panscan=1.0",
		"--no-input-default-bindings",
		"--input-ipc-server=" + opts.Socket,
	}
}

// Process identifies a launched player.
type Process struct {
	PID    int    `json:"pid"`
	Socket string `json:"socket"`
}

// Launcher starts the background player.
type Launcher struct {
	logger *slog.Logger
	ready  func(socket string) bool
}

// NewLauncher constructs a Launcher.
func NewLauncher(logger *slog.Logger) *Launcher {
	return &Launcher{
		logger: logging.NewComponentLogger(logger, "player"),
		ready:  socketReady,
	}
}

// Start spawns the wrapper in a new session and returns once the control
// socket exists. The player keeps running after the caller exits. A stale
// socket file is removed first; a live one fails with ErrAlreadyRunning.
func (l *Launcher) Start(ctx context.Context, opts Options) (Process, error) {
	opts = opts.withDefaults()

	if err := l.clearSocket(ctx, opts.Socket); err != nil {
		return Process{}, err
	}

	args := Args(opts)
	cmd := exec.Command(opts.Wrapper, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	l.logger.InfoContext(ctx, "starting player",
		logging.String("wrapper", opts.Wrapper),
		logging.String("geometry", Geometry(opts.Resolution, opts.Offset)),
		logging.String("socket", opts.Socket),
	)
	l.logger.DebugContext(ctx, "player command", logging.String("args", strings.Join(args, " ")))

	if err := cmd.Start(); err != nil {
		return Process{}, services.ToolError(opts.Wrapper, "start player", err, nil)
	}

	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	timeout := time.NewTimer(opts.StartupTimeout)
	defer timeout.Stop()

	for {
		if l.ready(opts.Socket) {
			proc := Process{PID: cmd.Process.Pid, Socket: opts.Socket}
			l.logger.InfoContext(ctx, "player started",
				logging.Int("pid", proc.PID),
				logging.String("socket", proc.Socket),
			)
			return proc, nil
		}
		select {
		case err := <-exited:
			if err == nil {
				err = errors.New("exited before the control socket appeared")
			}
			return Process{}, services.ToolError(opts.Wrapper, "start player", err, nil)
		case <-timeout.C:
			killGroup(cmd.Process.Pid)
			return Process{}, services.Wrap(services.ErrExternalTool, "player", "start player",
				fmt.Sprintf("control socket %s did not appear within %s", opts.Socket, opts.StartupTimeout), nil)
		case <-ctx.Done():
			killGroup(cmd.Process.Pid)
			return Process{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Launcher) clearSocket(ctx context.Context, socket string) error {
	if _, err := os.Lstat(socket); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return services.Wrap(services.ErrSocket, "player", "inspect socket", socket, err)
	}
	if NewClient(socket).Alive(ctx) {
		return fmt.Errorf("%w on %s", ErrAlreadyRunning, socket)
	}
	l.logger.InfoContext(ctx, "removing stale player socket", logging.String("socket", socket))
	if err := os.Remove(socket); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrSocket, "player", "remove stale socket", socket, err)
	}
	return nil
}

func socketReady(socket string) bool {
	info, err := os.Stat(socket)
	return err == nil && info.Mode()&os.ModeSocket != 0
}

func killGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGTERM)
}
