// Package wallpaper enumerates the wallpapers directory and derives the
// identity every cache entry is keyed on.
//
// Stem strips the final extension from a file name and is the join key for
// thumbnails; the full file name is the join key for rescaled copies. Scan
// lists regular files lazily and never follows symlinks.
package wallpaper
