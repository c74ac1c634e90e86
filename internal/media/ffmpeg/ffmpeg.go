package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"wallpaper-manager/internal/fileutil"
	"wallpaper-manager/internal/media"
	"wallpaper-manager/internal/services"
)

const (
	defaultBinary         = "ffmpeg"
	defaultThumbnailWidth = 520
	thumbnailSeek         = "00:00:00.000"
)

// Transcoder runs ffmpeg to produce cache entries.
type Transcoder struct {
	Binary         string
	ThumbnailWidth int
}

// NewTranscoder returns a Transcoder using binary (or "ffmpeg" from PATH when
// blank) and the given thumbnail width.
func NewTranscoder(binary string, thumbnailWidth int) *Transcoder {
	return &Transcoder{Binary: binary, ThumbnailWidth: thumbnailWidth}
}

func (t *Transcoder) binary() string {
	if binary := strings.TrimSpace(t.Binary); binary != "" {
		return binary
	}
	return defaultBinary
}

func (t *Transcoder) thumbnailWidth() int {
	if t.ThumbnailWidth > 0 {
		return t.ThumbnailWidth
	}
	return defaultThumbnailWidth
}

// RescaleArgs returns the ffmpeg arguments that scale src to res into out.
func RescaleArgs(src string, res media.Resolution, out string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", src,
		"-vf", res.ScaleFilter(),
		out,
	}
}

// ThumbnailArgs returns the ffmpeg arguments that grab the first frame of src
// scaled to width into out.
func ThumbnailArgs(src string, width int, out string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", src,
		"-ss", thumbnailSeek,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:-1", width),
		out,
	}
}

// Rescale writes a copy of src scaled to res at dst.
func (t *Transcoder) Rescale(ctx context.Context, src string, res media.Resolution, dst string) error {
	if !res.Valid() {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "rescale", fmt.Sprintf("invalid target resolution %s", res), nil)
	}
	tmp := fileutil.TempSibling(dst)
	return t.run(ctx, "rescale "+src, RescaleArgs(src, res, tmp), tmp, dst)
}

// GenerateThumbnail writes a JPEG of the first frame of src at dst.
func (t *Transcoder) GenerateThumbnail(ctx context.Context, src, dst string) error {
	tmp := fileutil.TempSibling(dst)
	return t.run(ctx, "thumbnail "+src, ThumbnailArgs(src, t.thumbnailWidth(), tmp), tmp, dst)
}

func (t *Transcoder) run(ctx context.Context, operation string, args []string, tmp, dst string) error {
	binary := t.binary()
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		fileutil.Discard(tmp)
		return services.ToolError(binary, operation, err, stderr.Bytes())
	}
	if err := fileutil.Commit(tmp, dst); err != nil {
		return services.Wrap(services.ErrFilesystem, "ffmpeg", operation, "publish output", err)
	}
	return nil
}
