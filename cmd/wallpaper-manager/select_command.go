package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wallpaper-manager/internal/config"
	"wallpaper-manager/internal/picker"
	"wallpaper-manager/internal/player"
	"wallpaper-manager/internal/selection"
)

func newSelectWallpaperCommand(ctx *commandContext) *cobra.Command {
	var socket string
	var static bool
	var query string

	cmd := &cobra.Command{
		Use:   "select-wallpaper",
		Short: "Pick a wallpaper and load it into the running player",
		Long: "Browse the thumbnail cache, resolve the pick back to its wallpaper, and load\n" +
			"the rescaled copy (or the original) into the player started by `daemon`.\n\n" +
			"--static browses the wallpapers directory itself. --query skips the picker\n" +
			"and loads the closest fuzzy match by file name.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureWallpapers()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}

			var p selection.Picker = picker.Sxiv{Binary: cfg.Binaries.Picker}
			if strings.TrimSpace(query) != "" {
				p = picker.Fuzzy{Query: query}
			}
			client := player.NewClient(firstNonEmpty(socket, cfg.SocketPath))

			result, err := selection.New(p, client, logger).Run(cmd.Context(), selectionDirs(cfg), selection.Request{
				Static:  static,
				Exclude: cfg.Exclude,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %q\n", result.Source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&socket, "socket-path", "s", "", "Control socket of the running player (defaults to socket_path)")
	cmd.Flags().BoolVar(&static, "static", false, "Browse the wallpapers directory instead of the thumbnail cache")
	cmd.Flags().StringVar(&query, "query", "", "Load the best fuzzy match for this name without opening the picker")
	return cmd
}

func selectionDirs(cfg *config.Config) selection.Dirs {
	return selection.Dirs{
		Source:     cfg.WallpapersDir,
		Thumbnails: cfg.ThumbnailDir(),
		Rescaled:   cfg.RescaledDir(),
	}
}
