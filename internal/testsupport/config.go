package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"wallpaper-manager/internal/config"
	"wallpaper-manager/internal/media"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The wallpapers directory and cache layout exist on return.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.WallpapersDir = filepath.Join(base, "wallpapers")
	cfgVal.CacheDir = filepath.Join(base, "cache")
	cfgVal.SocketPath = filepath.Join(base, "mpv.sock")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := os.MkdirAll(cfgVal.WallpapersDir, 0o755); err != nil {
		t.Fatalf("mkdir wallpapers dir: %v", err)
	}
	if err := cfgVal.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithResolution overrides the target resolution on the test config.
func WithResolution(width, height int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Resolution = media.Resolution{Width: width, Height: height}
	}
}

// WithExclude sets the scanner exclusion patterns on the test config.
func WithExclude(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Exclude = patterns
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, every external binary the
// manager drives is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe", "sxiv", "xwinwrap", "mpv"}
		}
		stubs := make(map[string]string, len(names))
		for _, name := range names {
			stubs[name] = "exit 0"
		}
		installStubs(b.t, filepath.Join(b.baseDir, "bin"), stubs)
	}
}

// WithScriptedBinary installs a stub executable running the given shell body.
func WithScriptedBinary(name, body string) ConfigOption {
	return func(b *configBuilder) {
		installStubs(b.t, filepath.Join(b.baseDir, "bin"), map[string]string{name: body})
	}
}

// StubBinary writes a single shell stub into dir and returns its path. It does
// not touch PATH.
func StubBinary(t testing.TB, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(target, script, 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

func installStubs(t testing.TB, binDir string, stubs map[string]string) {
	t.Helper()
	for name, body := range stubs {
		StubBinary(t, binDir, name, body)
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.WallpapersDir)
}
