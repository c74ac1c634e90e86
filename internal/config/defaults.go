package config

import "wallpaper-manager/internal/media"

const (
	defaultSocketPath     = "/tmp/wallpaper-mpv-socket"
	defaultWidth          = 1920
	defaultHeight         = 1080
	defaultThumbnailWidth = 520
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultPickerBinary   = "sxiv"
	defaultWrapperBinary  = "xwinwrap"
	defaultPlayerBinary   = "mpv"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults. The wallpapers
// and cache directories are left empty; cache_dir falls back to the user cache
// directory during normalization.
func Default() Config {
	return Config{
		SocketPath: defaultSocketPath,
		Resolution: media.Resolution{Width: defaultWidth, Height: defaultHeight},
		Thumbnails: Thumbnails{Width: defaultThumbnailWidth},
		Binaries:   defaultBinaries(),
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultBinaries() Binaries {
	return Binaries{
		FFmpeg:  defaultFFmpegBinary,
		FFprobe: defaultFFprobeBinary,
		Picker:  defaultPickerBinary,
		Wrapper: defaultWrapperBinary,
		Player:  defaultPlayerBinary,
	}
}
