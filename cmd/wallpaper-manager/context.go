package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"wallpaper-manager/internal/config"
	"wallpaper-manager/internal/logging"
)

const (
	// annotationSkipConfig marks commands that never load the config file.
	annotationSkipConfig = "skipConfigLoad"
	// annotationAllowMissing marks commands that run on defaults when the
	// config file is absent instead of offering to create it.
	annotationAllowMissing = "allowMissingConfig"
)

// errConfigPrompted ends the invocation after the missing-config prompt. It
// maps to a zero exit status whether or not a file was written.
var errConfigPrompted = errors.New("configuration file was missing")

type commandContext struct {
	overrides config.Overrides

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configPath, c.configExists, c.configErr = config.Load(c.overrides)
	})
	return c.config, c.configErr
}

// requireConfig loads the config and, when the file is absent, offers to
// write the default one.
func (c *commandContext) requireConfig(cmd *cobra.Command) error {
	if _, err := c.ensureConfig(); err != nil {
		return err
	}
	if c.configExists || hasAnnotation(cmd, annotationAllowMissing) {
		return nil
	}

	out := cmd.ErrOrStderr()
	question := fmt.Sprintf("No configuration file at %s. Create the default configuration there?", c.configPath)
	if !stdinIsTerminal() {
		fmt.Fprintf(out, "No configuration file at %s; run `wallpaper-manager config init` to create one.\n", c.configPath)
		return errConfigPrompted
	}
	ok, err := confirmPrompt(cmd.InOrStdin(), out, question)
	if err != nil {
		return fmt.Errorf("confirm config creation: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "No configuration written.")
		return errConfigPrompted
	}
	if err := config.CreateSample(c.configPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote default configuration to %s; set wallpapers_dir and run the command again.\n", c.configPath)
	return errConfigPrompted
}

// ensureWallpapers returns the config after verifying the wallpapers directory
// and creating the cache layout.
func (c *commandContext) ensureWallpapers() (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *commandContext) newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[key] == "true" {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
