package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"wallpaper-manager/internal/media"
	"wallpaper-manager/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	appDirName     = "wallpaper-manager"
	configFileName = "config.toml"

	// ThumbnailDirName is the thumbnail cache directory under cache_dir.
	ThumbnailDirName = "wallpapers-thumbnail"
	// RescaledDirName is the rescaled-copy cache directory under cache_dir.
	RescaledDirName = "wallpapers-rescaled"
)

// Offset positions the wallpaper window on the X screen.
type Offset struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// Thumbnails contains thumbnail generation settings.
type Thumbnails struct {
	Width int `toml:"width"`
}

// Binaries names the external programs the manager drives.
type Binaries struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	Picker  string `toml:"picker"`
	Wrapper string `toml:"wrapper"`
	Player  string `toml:"player"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the wallpaper manager.
//
// Configuration sections:
//   - top level: wallpapers/cache directories, player socket, exclusion globs
//   - Resolution: target resolution for rescaled copies and the player window
//   - Offset: player window position
//   - Thumbnails: thumbnail width
//   - Binaries: external program names or paths
//   - Logging: log format and level
type Config struct {
	WallpapersDir string           `toml:"wallpapers_dir"`
	CacheDir      string           `toml:"cache_dir"`
	SocketPath    string           `toml:"socket_path"`
	Exclude       []string         `toml:"exclude"`
	Resolution    media.Resolution `toml:"resolution"`
	Offset        Offset           `toml:"offset"`
	Thumbnails    Thumbnails       `toml:"thumbnails"`
	Binaries      Binaries         `toml:"binaries"`
	Logging       Logging          `toml:"logging"`
}

// Overrides carries command-line values that take precedence over the file.
type Overrides struct {
	// ConfigPath is either a .toml file or a directory holding config.toml.
	ConfigPath    string
	WallpapersDir string
	CacheDir      string
	SocketPath    string
	LogLevel      string
	LogFormat     string
}

// Load locates, parses, and validates a configuration file. The returned config
// has command-line overrides applied and all path fields expanded. A missing
// file is not an error: the defaults are returned with exists set to false.
func Load(overrides Overrides) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, err := ResolvePath(overrides.ConfigPath)
	if err != nil {
		return nil, "", false, loadError("resolve path", err)
	}

	exists, err := fileExists(resolvedPath)
	if err != nil {
		return nil, "", false, loadError("inspect file", err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, loadError("open", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, loadError("parse "+resolvedPath, err)
		}
	}

	cfg.apply(overrides)

	if err := cfg.normalize(); err != nil {
		return nil, "", false, loadError("normalize", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, loadError("validate", err)
	}

	return &cfg, resolvedPath, exists, nil
}

func loadError(op string, err error) error {
	return services.Wrap(services.ErrConfiguration, "config", op, "", err)
}

// ResolvePath returns the configuration file location. An explicit path ending
// in .toml names the file; any other explicit path names its directory. Without
// one, XDG_CONFIG_HOME, then HOME/.config, then the platform config directory
// are consulted.
func ResolvePath(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		expanded, err := expandPath(explicit)
		if err != nil {
			return "", err
		}
		if strings.EqualFold(filepath.Ext(expanded), ".toml") {
			return expanded, nil
		}
		return filepath.Join(expanded, configFileName), nil
	}

	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return filepath.Join(base, appDirName, configFileName), nil
	}
	if home := strings.TrimSpace(os.Getenv("HOME")); home != "" {
		return filepath.Join(home, ".config", appDirName, configFileName), nil
	}
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, appDirName, configFileName), nil
	}
	return "", errors.New("could not resolve the config directory: pass --config-dir or set XDG_CONFIG_HOME or HOME")
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

func (c *Config) apply(o Overrides) {
	if v := strings.TrimSpace(o.WallpapersDir); v != "" {
		c.WallpapersDir = v
	}
	if v := strings.TrimSpace(o.CacheDir); v != "" {
		c.CacheDir = v
	}
	if v := strings.TrimSpace(o.SocketPath); v != "" {
		c.SocketPath = v
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(o.LogFormat); v != "" {
		c.Logging.Format = v
	}
}

// ThumbnailDir returns the thumbnail cache directory.
func (c *Config) ThumbnailDir() string {
	return filepath.Join(c.CacheDir, ThumbnailDirName)
}

// RescaledDir returns the rescaled-copy cache directory.
func (c *Config) RescaledDir() string {
	return filepath.Join(c.CacheDir, RescaledDirName)
}

// Target returns the configured target resolution.
func (c *Config) Target() media.Resolution {
	return c.Resolution
}

// EnsureDirectories creates the cache layout and verifies that the wallpapers
// directory is configured and present.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.WallpapersDir) == "" {
		return services.Wrap(services.ErrConfiguration, "config", "resolve wallpapers dir",
			"could not resolve the wallpapers directory; set wallpapers_dir or pass --wallpapers-dir", nil)
	}
	for _, dir := range []string{c.ThumbnailDir(), c.RescaledDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrFilesystem, "config", "create cache directory", dir, err)
		}
	}
	info, err := os.Stat(c.WallpapersDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrConfiguration, "config", "resolve wallpapers dir",
				fmt.Sprintf("wallpapers directory %s does not exist", c.WallpapersDir), nil)
		}
		return services.Wrap(services.ErrFilesystem, "config", "stat wallpapers dir", c.WallpapersDir, err)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrConfiguration, "config", "resolve wallpapers dir",
			fmt.Sprintf("wallpapers path %s is not a directory", c.WallpapersDir), nil)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && pathValue[1] == '/' {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the tilde and absolute-path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded default configuration file.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the default configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
