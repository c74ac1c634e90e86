// Package ffprobe wraps ffprobe to read the native resolution of wallpaper
// media.
//
// Prober runs ffprobe against the first video stream, decodes the JSON report
// into Result, and returns the stream dimensions as a media.Resolution. Tool
// failures are classified through services.ToolError so a missing binary and
// a non-zero exit are reported differently.
package ffprobe
