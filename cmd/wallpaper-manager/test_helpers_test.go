package main

import (
	"bufio"
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"wallpaper-manager/internal/config"
	"wallpaper-manager/internal/testsupport"
)

// Reports 1280x720 for b.mp4 and 1920x1080 for everything else.
const fakeFFprobe = `for last; do :; done
case "$last" in
  *b.mp4) w=1280; h=720 ;;
  *) w=1920; h=1080 ;;
esac
printf '{"streams":[{"index":0,"codec_name":"h264","codec_type":"video","width":%d,"height":%d}]}\n' "$w" "$h"`

// Writes an empty file at the output path, which is always the last argument.
const fakeFFmpeg = `for last; do :; done
: > "$last"`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	opts = append([]testsupport.ConfigOption{
		testsupport.WithStubbedBinaries(),
		testsupport.WithScriptedBinary("ffprobe", fakeFFprobe),
		testsupport.WithScriptedBinary("ffmpeg", fakeFFmpeg),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	code := run(cmd)
	return stdout.String(), stderr.String(), code
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	return runCLI(t, append([]string{"--config-dir", e.configPath}, args...)...)
}

// fakePlayer listens on a Unix socket and records every line it receives.
type fakePlayer struct {
	socket string
	lines  chan string
}

func startFakePlayer(t *testing.T) *fakePlayer {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "mpv.sock")
	l, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })

	fp := &fakePlayer{socket: socket, lines: make(chan string, 8)}
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					fp.lines <- scanner.Text()
				}
			}()
		}
	}()
	return fp
}

func (fp *fakePlayer) next(t *testing.T) string {
	t.Helper()
	select {
	case line := <-fp.lines:
		return line
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for player command")
		return ""
	}
}

func requireContains(t *testing.T, s, want string) {
	t.Helper()
	if !strings.Contains(s, want) {
		t.Fatalf("expected %q in output:\n%s", want, s)
	}
}

func requireExit(t *testing.T, got, want int, stderr string) {
	t.Helper()
	if got != want {
		t.Fatalf("exit code %d, want %d (stderr: %s)", got, want, stderr)
	}
}
