// Package player drives the background video player.
//
// Launcher starts xwinwrap hosting mpv as a desktop-background window with an
// IPC control socket, waits for the socket to appear, and leaves the player
// running in its own session. Client sends newline-terminated JSON commands
// to that socket; LoadFile switches the playing wallpaper.
package player
