package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateGeometry(); err != nil {
		return err
	}
	if err := c.validateExclude(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.CacheDir) == "" {
		return errors.New("could not resolve the cache directory; set cache_dir or pass --cache-dir")
	}
	if strings.TrimSpace(c.SocketPath) == "" {
		return errors.New("socket_path must be set")
	}
	return nil
}

func (c *Config) validateGeometry() error {
	if !c.Resolution.Valid() {
		return fmt.Errorf("resolution must be positive, got %s", c.Resolution)
	}
	if c.Offset.X < 0 || c.Offset.Y < 0 {
		return fmt.Errorf("offset must not be negative, got %d,%d", c.Offset.X, c.Offset.Y)
	}
	if c.Thumbnails.Width <= 0 {
		return fmt.Errorf("thumbnails.width must be positive, got %d", c.Thumbnails.Width)
	}
	return nil
}

func (c *Config) validateExclude() error {
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("exclude: invalid pattern %q", pattern)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
