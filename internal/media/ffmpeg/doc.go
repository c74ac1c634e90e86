// Package ffmpeg derives cache entries from wallpaper media with ffmpeg:
// a single-frame JPEG thumbnail and a copy rescaled to the target resolution.
//
// Output is written to a hidden sibling of the destination and renamed into
// place only after ffmpeg exits successfully, so a failed or interrupted run
// never leaves a file under the final cache name.
package ffmpeg
