// Package config loads, normalizes, and validates wallpaper-manager configuration.
//
// It locates config.toml (explicit path, XDG_CONFIG_HOME, HOME/.config, then
// the platform config directory), applies command-line overrides, expands
// tilde paths, and falls back to the user cache directory when cache_dir is
// unset. The Config type also knows the derived cache layout under cache_dir.
//
// Always obtain settings through this package so downstream code receives
// absolute paths and clear validation errors.
package config
