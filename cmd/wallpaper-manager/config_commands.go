package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wallpaper-manager/internal/config"
	"wallpaper-manager/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create the default configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ResolvePath(firstNonEmpty(targetPath, ctx.overrides.ConfigPath))
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "resolve path", "", err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return services.Wrap(services.ErrConfiguration, "config", "init",
						fmt.Sprintf("config file already exists at %s (use --overwrite to replace it)", target), nil)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return services.Wrap(services.ErrFilesystem, "config", "check config path", target, err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return services.Wrap(services.ErrFilesystem, "config", "create sample config", target, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit wallpapers_dir before running generate-cache.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination file or directory (defaults to the config search path)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration and the wallpapers directory",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationAllowMissing: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureWallpapers()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Wallpapers: %s\n", cfg.WallpapersDir)
			fmt.Fprintf(out, "Cache:      %s\n", cfg.CacheDir)
			fmt.Fprintf(out, "Target:     %s\n", cfg.Target())
			if len(cfg.Exclude) > 0 {
				fmt.Fprintf(out, "Exclude:    %s\n", strings.Join(cfg.Exclude, ", "))
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file location",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(ctx.overrides.ConfigPath)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "resolve path", "", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
