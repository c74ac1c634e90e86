package wallpaper

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrDirectoryUnreadable reports a directory that could not be opened or listed.
var ErrDirectoryUnreadable = errors.New("directory unreadable")

const readBatch = 128

// Entry is a regular file found in a scanned directory.
type Entry struct {
	Path string
	Name string
	Stem string
}

type scanOptions struct {
	exclude []string
}

// Option configures Scan.
type Option func(*scanOptions)

// WithExclude skips file names matching any of the doublestar patterns.
func WithExclude(patterns []string) Option {
	return func(o *scanOptions) {
		o.exclude = append(o.exclude, patterns...)
	}
}

func (o scanOptions) excluded(name string) bool {
	for _, pattern := range o.exclude {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Scan opens dir and returns a lazy sequence of its regular files. Opening
// happens immediately so an unreadable directory fails here; listing happens
// in batches while the sequence is ranged. The sequence can be ranged once;
// the directory handle is released when that range ends.
func Scan(dir string, opts ...Option) (iter.Seq2[Entry, error], error) {
	var options scanOptions
	for _, opt := range opts {
		opt(&options)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryUnreadable, dir, err)
	}
	handle, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryUnreadable, abs, err)
	}
	info, err := handle.Stat()
	if err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryUnreadable, abs, err)
	}
	if !info.IsDir() {
		_ = handle.Close()
		return nil, fmt.Errorf("%w: %s: not a directory", ErrDirectoryUnreadable, abs)
	}

	consumed := false
	return func(yield func(Entry, error) bool) {
		if consumed {
			return
		}
		consumed = true
		defer handle.Close()

		for {
			batch, readErr := handle.ReadDir(readBatch)
			for _, de := range batch {
				if !de.Type().IsRegular() {
					continue
				}
				name := de.Name()
				if options.excluded(name) {
					continue
				}
				stem, stemErr := Stem(name)
				if stemErr != nil {
					continue
				}
				if !yield(Entry{Path: filepath.Join(abs, name), Name: name, Stem: stem}, nil) {
					return
				}
			}
			if readErr != nil {
				if !errors.Is(readErr, io.EOF) {
					yield(Entry{}, fmt.Errorf("%w: %s: %w", ErrDirectoryUnreadable, abs, readErr))
				}
				return
			}
		}
	}, nil
}

// FindByStem returns the first regular file in dir whose stem equals stem.
func FindByStem(dir, stem string, opts ...Option) (Entry, bool, error) {
	entries, err := Scan(dir, opts...)
	if err != nil {
		return Entry{}, false, err
	}
	for entry, err := range entries {
		if err != nil {
			return Entry{}, false, err
		}
		if entry.Stem == stem {
			return entry, true, nil
		}
	}
	return Entry{}, false, nil
}
