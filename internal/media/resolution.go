package media

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// String renders the resolution as WIDTHxHEIGHT.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Valid reports whether both dimensions are positive.
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// ScaleFilter returns the ffmpeg scale filter argument for the resolution.
func (r Resolution) ScaleFilter() string {
	return fmt.Sprintf("scale=%d:%d", r.Width, r.Height)
}

// ParseResolution parses WIDTHxHEIGHT.
func ParseResolution(value string) (Resolution, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(value)), "x")
	if !ok {
		return Resolution{}, fmt.Errorf("resolution %q: expected WIDTHxHEIGHT", value)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Resolution{}, fmt.Errorf("resolution %q: width: %w", value, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Resolution{}, fmt.Errorf("resolution %q: height: %w", value, err)
	}
	res := Resolution{Width: width, Height: height}
	if !res.Valid() {
		return Resolution{}, fmt.Errorf("resolution %q: dimensions must be positive", value)
	}
	return res, nil
}
