package picker

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"wallpaper-manager/internal/services"
	"wallpaper-manager/internal/wallpaper"
)

// ErrNoSelection reports that the picker completed without a choice.
var ErrNoSelection = fmt.Errorf("%w: no wallpaper selected", services.ErrSelection)

// Picker returns the path of one file chosen from dir.
type Picker interface {
	SelectOne(ctx context.Context, dir string) (string, error)
}

const defaultSxivBinary = "sxiv"

// Sxiv runs sxiv in thumbnail mode and reads the marked files from stdout.
type Sxiv struct {
	Binary string
}

// Args returns the sxiv arguments used to browse dir.
func (s Sxiv) Args(dir string) []string {
	return []string{"-t", "-o", dir}
}

// SelectOne blocks until the sxiv window is closed.
func (s Sxiv) SelectOne(ctx context.Context, dir string) (string, error) {
	binary := strings.TrimSpace(s.Binary)
	if binary == "" {
		binary = defaultSxivBinary
	}
	cmd := exec.CommandContext(ctx, binary, s.Args(dir)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", services.ToolError(binary, "select", err, stderr.Bytes())
	}
	choice := firstLine(out)
	if choice == "" {
		return "", ErrNoSelection
	}
	if !filepath.IsAbs(choice) {
		choice = filepath.Join(dir, choice)
	}
	return choice, nil
}

func firstLine(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return ""
}

// Fuzzy picks the file whose name best matches Query.
type Fuzzy struct {
	Query string
}

type entrySource []wallpaper.Entry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// SelectOne returns the best match among the regular files in dir.
func (f Fuzzy) SelectOne(_ context.Context, dir string) (string, error) {
	query := strings.TrimSpace(f.Query)
	if query == "" {
		return "", ErrNoSelection
	}
	seq, err := wallpaper.Scan(dir)
	if err != nil {
		return "", services.Wrap(services.ErrFilesystem, "picker", "list candidates", dir, err)
	}
	var entries entrySource
	for entry, err := range seq {
		if err != nil {
			return "", services.Wrap(services.ErrFilesystem, "picker", "list candidates", dir, err)
		}
		entries = append(entries, entry)
	}
	matches := fuzzy.FindFrom(query, entries)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: nothing matches %q", ErrNoSelection, query)
	}
	return entries[matches[0].Index].Path, nil
}
