package preflight

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wallpaper-manager/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, true)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "read/write ok") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_ReadOnlyDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if result := CheckDirectoryAccess("test", dir, false); !result.Passed {
		t.Fatalf("expected read-only check to pass, got: %s", result.Detail)
	}
	if result := CheckDirectoryAccess("test", dir, true); result.Passed {
		t.Fatal("expected write check to fail on read-only dir")
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), false)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, false)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckPlayer(t *testing.T) {
	dir := t.TempDir()
	socket := filepath.Join(dir, "mpv.sock")

	if r := CheckPlayer(context.Background(), socket); !strings.Contains(r.Detail, "not running") {
		t.Fatalf("expected not running, got %q", r.Detail)
	}

	l, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()
	if r := CheckPlayer(context.Background(), socket); !strings.Contains(r.Detail, "(running)") {
		t.Fatalf("expected running, got %q", r.Detail)
	}

	l.(*net.UnixListener).SetUnlinkOnClose(false)
	_ = l.Close()
	if r := CheckPlayer(context.Background(), socket); !strings.Contains(r.Detail, "stale") {
		t.Fatalf("expected stale, got %q", r.Detail)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	results := RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if Failed(results) != 0 {
		for _, r := range results {
			t.Errorf("check %q: passed=%v %s", r.Name, r.Passed, r.Detail)
		}
	}
}

func TestRunAll_MissingWallpapers(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.WallpapersDir = filepath.Join(t.TempDir(), "gone")

	results := RunAll(context.Background(), cfg)
	if Failed(results) != 1 || results[0].Passed {
		t.Fatalf("expected only the wallpapers check to fail, got %+v", results)
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Binaries.Wrapper = "wallpaper-manager-missing-wrapper"

	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 5 {
		t.Fatalf("expected 5 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		want := s.Name != "Wrapper"
		if s.Available != want {
			t.Errorf("%s: available=%v, want %v (%s)", s.Name, s.Available, want, s.Detail)
		}
	}
}
