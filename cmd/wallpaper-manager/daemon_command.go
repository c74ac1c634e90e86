package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallpaper-manager/internal/player"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	var socket string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Start the background video player",
		Long: "Start the background video player embedded in the desktop window.\n\n" +
			"The command returns once the player's control socket is up; the player keeps running.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}

			proc, err := player.NewLauncher(logger).Start(cmd.Context(), player.Options{
				Socket:     firstNonEmpty(socket, cfg.SocketPath),
				Resolution: cfg.Resolution,
				Offset:     player.Offset{X: cfg.Offset.X, Y: cfg.Offset.Y},
				Wrapper:    cfg.Binaries.Wrapper,
				Player:     cfg.Binaries.Player,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Player running (pid %d, socket %s)\n", proc.PID, proc.Socket)
			return nil
		},
	}

	cmd.Flags().StringVarP(&socket, "socket-path", "s", "", "Control socket for the player (defaults to socket_path)")
	return cmd
}
