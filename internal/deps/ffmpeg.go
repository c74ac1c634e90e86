package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const defaultFFprobe = "ffprobe"

// ResolveFFprobe picks the ffprobe binary paired with ffmpegCommand.
//
// An explicitly configured ffprobe wins. When ffprobe is left at its default
// name and ffmpeg points at a specific install, an executable ffprobe sitting
// next to that ffmpeg is preferred over whatever PATH resolves, so both tools
// come from the same build.
func ResolveFFprobe(ffmpegCommand, ffprobeCommand string) string {
	ffprobe := strings.TrimSpace(ffprobeCommand)
	if ffprobe != "" && ffprobe != defaultFFprobe {
		return ffprobe
	}

	ffmpeg := strings.TrimSpace(ffmpegCommand)
	if ffmpeg != "" && strings.ContainsRune(ffmpeg, filepath.Separator) {
		if resolved, err := exec.LookPath(ffmpeg); err == nil {
			candidate := filepath.Join(filepath.Dir(resolved), defaultFFprobe)
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				return candidate
			}
		}
	}
	return defaultFFprobe
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
