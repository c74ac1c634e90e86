package main

import (
	"github.com/spf13/cobra"

	"wallpaper-manager/internal/services"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "wallpaper-manager",
		Short:         "Manage video wallpapers, their caches, and the background player",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(services.WithCommand(cmd.Context(), cmd.Name()))
			if hasAnnotation(cmd, annotationSkipConfig) {
				return nil
			}
			return ctx.requireConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.overrides.WallpapersDir, "wallpapers-dir", "w", "", "Directory holding the wallpapers")
	flags.StringVarP(&ctx.overrides.CacheDir, "cache-dir", "e", "", "Parent directory of the thumbnail and rescaled caches")
	flags.StringVarP(&ctx.overrides.ConfigPath, "config-dir", "c", "", "Configuration directory or config.toml path")
	flags.StringVar(&ctx.overrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&ctx.overrides.LogFormat, "log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(newDaemonCommand(ctx))
	rootCmd.AddCommand(newGenerateCacheCommand(ctx))
	rootCmd.AddCommand(newSelectWallpaperCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
