package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExclude()
	c.normalizeBinaries()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.WallpapersDir, err = expandPath(strings.TrimSpace(c.WallpapersDir)); err != nil {
		return fmt.Errorf("wallpapers_dir: %w", err)
	}
	if strings.TrimSpace(c.CacheDir) == "" {
		if base, cacheErr := os.UserCacheDir(); cacheErr == nil {
			c.CacheDir = base
		}
	}
	if c.CacheDir, err = expandPath(strings.TrimSpace(c.CacheDir)); err != nil {
		return fmt.Errorf("cache_dir: %w", err)
	}
	if strings.TrimSpace(c.SocketPath) == "" {
		c.SocketPath = defaultSocketPath
	}
	if c.SocketPath, err = expandPath(strings.TrimSpace(c.SocketPath)); err != nil {
		return fmt.Errorf("socket_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeExclude() {
	if len(c.Exclude) == 0 {
		return
	}
	patterns := make([]string, 0, len(c.Exclude))
	for _, pattern := range c.Exclude {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}
	c.Exclude = patterns
}

func (c *Config) normalizeBinaries() {
	defaults := defaultBinaries()
	c.Binaries.FFmpeg = fallback(c.Binaries.FFmpeg, defaults.FFmpeg)
	c.Binaries.FFprobe = fallback(c.Binaries.FFprobe, defaults.FFprobe)
	c.Binaries.Picker = fallback(c.Binaries.Picker, defaults.Picker)
	c.Binaries.Wrapper = fallback(c.Binaries.Wrapper, defaults.Wrapper)
	c.Binaries.Player = fallback(c.Binaries.Player, defaults.Player)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(fallback(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(fallback(c.Logging.Level, defaultLogLevel))
}

func fallback(value, def string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return def
}
