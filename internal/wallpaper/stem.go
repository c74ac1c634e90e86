package wallpaper

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoStem reports a path without a file name segment.
var ErrNoStem = errors.New("path has no file name")

// Stem returns the file name of path without its final extension. A leading
// dot does not start an extension, so ".hidden" is its own stem.
func Stem(path string) (string, error) {
	if path == "" || strings.HasSuffix(path, string(os.PathSeparator)) {
		return "", ErrNoStem
	}
	name := filepath.Base(path)
	switch name {
	case ".", "..", string(os.PathSeparator):
		return "", ErrNoStem
	}
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name, nil
	}
	return name[:idx], nil
}

// ThumbnailName returns the thumbnail cache file name for a wallpaper name.
func ThumbnailName(name string) (string, error) {
	stem, err := Stem(name)
	if err != nil {
		return "", err
	}
	return stem + ".jpg", nil
}
