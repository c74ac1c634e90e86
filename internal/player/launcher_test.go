package player

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"testing"
	"time"

	"wallpaper-manager/internal/logging"
	"wallpaper-manager/internal/media"
	"wallpaper-manager/internal/services"
	"wallpaper-manager/internal/testsupport"
)

// creates the file named by --input-ipc-server and keeps running
const fakeWrapper = `for last; do :; done
: > "${last#--input-ipc-server=}"
exec sleep 30`

func TestArgs(t *testing.T) {
	got := Args(Options{
		Socket:     "/tmp/wallpaper-mpv-socket",
		Resolution: media.Resolution{Width: 2560, Height: 1440},
		Offset:     Offset{X: 1920},
	})
	want := []string{
		"-ov", "-b", "-fs", "-g", "2560x1440+1920+0", "--",
		"mpv", "-wid", "WID", "--idle=", "--no-osc", "--no-osd-bar", "--loop-file",
		"--player-operation-mode=cplayer", "--no-audio", "--panscan=1.0",
		"--no-input-default-bindings", "--input-ipc-server=/tmp/wallpaper-mpv-socket",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", got, want)
	}
}

func TestArgsDefaults(t *testing.T) {
	got := Args(Options{})
	if got[4] != "1920x1080+0+0" {
		t.Fatalf("unexpected default geometry %q", got[4])
	}
	if got[len(got)-1] != "--input-ipc-server="+DefaultSocket {
		t.Fatalf("unexpected default socket arg %q", got[len(got)-1])
	}
}

func newTestLauncher() *Launcher {
	l := NewLauncher(logging.NewNop())
	l.ready = func(socket string) bool {
		_, err := os.Stat(socket)
		return err == nil
	}
	return l
}

func TestStartWaitsForSocket(t *testing.T) {
	wrapper := testsupport.StubBinary(t, t.TempDir(), "xwinwrap", fakeWrapper)
	socket := filepath.Join(t.TempDir(), "mpv.sock")

	proc, err := newTestLauncher().Start(context.Background(), Options{Socket: socket, Wrapper: wrapper})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	t.Cleanup(func() { _ = syscall.Kill(-proc.PID, syscall.SIGKILL) })

	if proc.PID <= 0 || proc.Socket != socket {
		t.Fatalf("unexpected process %+v", proc)
	}
	if err := syscall.Kill(proc.PID, 0); err != nil {
		t.Fatalf("expected player to keep running: %v", err)
	}
}

func TestStartRemovesStaleSocket(t *testing.T) {
	wrapper := testsupport.StubBinary(t, t.TempDir(), "xwinwrap", `for last; do :; done
test -e "${last#--input-ipc-server=}" && exit 9
: > "${last#--input-ipc-server=}"
exec sleep 30`)
	socket, l := listen(t)
	l.SetUnlinkOnClose(false)
	_ = l.Close()

	proc, err := newTestLauncher().Start(context.Background(), Options{Socket: socket, Wrapper: wrapper})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	t.Cleanup(func() { _ = syscall.Kill(-proc.PID, syscall.SIGKILL) })
}

func TestStartRefusesLiveSocket(t *testing.T) {
	socket, l := listen(t)
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	_, err := newTestLauncher().Start(context.Background(), Options{Socket: socket, Wrapper: "wallpaper-manager-never-run"})
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if services.ExitCode(err) != services.ExitSocket {
		t.Fatalf("expected socket exit code, got %d", services.ExitCode(err))
	}
}

func TestStartReportsEarlyExit(t *testing.T) {
	wrapper := testsupport.StubBinary(t, t.TempDir(), "xwinwrap", `echo "cannot open display" >&2; exit 1`)
	socket := filepath.Join(t.TempDir(), "mpv.sock")

	_, err := newTestLauncher().Start(context.Background(), Options{Socket: socket, Wrapper: wrapper})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "status 1") {
		t.Fatalf("expected exit status in error, got %v", err)
	}
}

func TestStartMissingWrapper(t *testing.T) {
	_, err := newTestLauncher().Start(context.Background(), Options{
		Socket:  filepath.Join(t.TempDir(), "mpv.sock"),
		Wrapper: "wallpaper-manager-missing-xwinwrap",
	})
	if !errors.Is(err, services.ErrBinaryNotFound) {
		t.Fatalf("expected binary not found, got %v", err)
	}
}

func TestStartTimesOut(t *testing.T) {
	wrapper := testsupport.StubBinary(t, t.TempDir(), "xwinwrap", "exec sleep 30")

	start := time.Now()
	_, err := newTestLauncher().Start(context.Background(), Options{
		Socket:         filepath.Join(t.TempDir(), "mpv.sock"),
		Wrapper:        wrapper,
		StartupTimeout: 200 * time.Millisecond,
	})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout was not honored")
	}
}
