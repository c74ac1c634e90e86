// Package selection implements the select-wallpaper workflow.
//
// The picker browses the thumbnail cache, the chosen thumbnail is joined back
// to its source file by stem, and the player is told to load the rescaled copy
// when one exists or the source file otherwise. Static mode skips the cache
// and browses the wallpapers directory directly.
package selection
