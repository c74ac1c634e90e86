// Package media holds value types shared by the ffprobe and ffmpeg adapters.
package media
