// Package main hosts the wallpaper-manager CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the slog logger from it, and hands off to the internal packages: reconcile
// for generate-cache and cache stats, selection for select-wallpaper, player
// for daemon, and preflight for doctor. Every error travels back to run, which
// prints it and exits with the category code from services.ExitCode.
package main
