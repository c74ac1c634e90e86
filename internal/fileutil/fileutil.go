package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const tempMarker = ".partial-"

// TempSibling returns a hidden path in the same directory as final. The
// original extension is kept so tools that infer the output format from the
// file name still work.
func TempSibling(final string) string {
	dir, name := filepath.Split(final)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return filepath.Join(dir, "."+base+tempMarker+token+ext)
}

// IsTemp reports whether name was produced by TempSibling.
func IsTemp(name string) bool {
	return strings.HasPrefix(name, ".") && strings.Contains(name, tempMarker)
}

// Commit renames tmp onto final. On failure tmp is removed.
func Commit(tmp, final string) error {
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s to %s: %w", tmp, final, err)
	}
	return nil
}

// Discard removes tmp, ignoring a missing file.
func Discard(tmp string) {
	_ = os.Remove(tmp)
}
