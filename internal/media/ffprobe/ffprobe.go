package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"wallpaper-manager/internal/media"
	"wallpaper-manager/internal/services"
)

const defaultBinary = "ffprobe"

// Result represents the parsed stream section of an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Resolution returns the size of the first stream that reports one.
func (r Result) Resolution() (media.Resolution, bool) {
	for _, stream := range r.Streams {
		res := media.Resolution{Width: stream.Width, Height: stream.Height}
		if res.Valid() {
			return res, true
		}
	}
	return media.Resolution{}, false
}

// Prober reads the native resolution of a media file with ffprobe.
type Prober struct {
	Binary string
}

// NewProber returns a Prober using the given ffprobe binary, or "ffprobe"
// from PATH when binary is blank.
func NewProber(binary string) *Prober {
	return &Prober{Binary: binary}
}

func (p *Prober) binary() string {
	if p == nil {
		return defaultBinary
	}
	if binary := strings.TrimSpace(p.Binary); binary != "" {
		return binary
	}
	return defaultBinary
}

// ProbeResolution returns the width and height of the first video stream of path.
func (p *Prober) ProbeResolution(ctx context.Context, path string) (media.Resolution, error) {
	result, err := p.Inspect(ctx, path)
	if err != nil {
		return media.Resolution{}, err
	}
	res, ok := result.Resolution()
	if !ok {
		return media.Resolution{}, services.Wrap(services.ErrExternalTool, "ffprobe", "probe resolution",
			fmt.Sprintf("no video stream dimensions reported for %s", path), nil)
	}
	return res, nil
}

// Inspect runs ffprobe restricted to the first video stream and decodes its
// JSON report.
func (p *Prober) Inspect(ctx context.Context, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	binary := p.binary()
	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=index,codec_name,codec_type,width,height",
		"-of", "json",
		"--", path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return Result{}, services.ToolError(binary, "probe "+path, err, stderr.Bytes())
	}
	return Parse(output)
}

// Parse decodes an ffprobe JSON report.
func Parse(output []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "parse output", "malformed JSON", err)
	}
	return result, nil
}
