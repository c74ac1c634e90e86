package reconcile

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"wallpaper-manager/internal/media"
)

type recorder struct {
	events []string
}

func (r *recorder) add(event string) {
	if r != nil {
		r.events = append(r.events, event)
	}
}

type fakeProber struct {
	resolutions map[string]media.Resolution
	fallback    media.Resolution
	err         error
	calls       []string
	rec         *recorder
}

func (p *fakeProber) ProbeResolution(_ context.Context, path string) (media.Resolution, error) {
	p.calls = append(p.calls, filepath.Base(path))
	p.rec.add("probe " + filepath.Base(path))
	if p.err != nil {
		return media.Resolution{}, p.err
	}
	if res, ok := p.resolutions[filepath.Base(path)]; ok {
		return res, nil
	}
	return p.fallback, nil
}

type fakeTranscoder struct {
	thumbnails []string
	rescaled   []string
	failOn     string
	err        error
	rec        *recorder
}

func (t *fakeTranscoder) GenerateThumbnail(_ context.Context, src, dst string) error {
	t.rec.add("thumbnail " + filepath.Base(src))
	if t.failOn == filepath.Base(src) {
		return t.failure()
	}
	t.thumbnails = append(t.thumbnails, filepath.Base(dst))
	return os.WriteFile(dst, []byte("jpeg"), 0o644)
}

func (t *fakeTranscoder) Rescale(_ context.Context, src string, _ media.Resolution, dst string) error {
	t.rec.add("rescale " + filepath.Base(src))
	if t.failOn == filepath.Base(src) {
		return t.failure()
	}
	t.rescaled = append(t.rescaled, filepath.Base(dst))
	return os.WriteFile(dst, []byte("video"), 0o644)
}

func (t *fakeTranscoder) failure() error {
	if t.err != nil {
		return t.err
	}
	return errors.New("transcode boom")
}

func (t *fakeTranscoder) calls() int {
	return len(t.thumbnails) + len(t.rescaled)
}
