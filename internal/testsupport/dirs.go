package testsupport

import (
	"os"
	"slices"
	"testing"
)

// ListNames returns the sorted names of every entry in dir.
func ListNames(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names
}

// RequireNames fails the test unless dir holds exactly the given names.
func RequireNames(t testing.TB, dir string, want ...string) {
	t.Helper()

	got := ListNames(t, dir)
	sorted := slices.Clone(want)
	slices.Sort(sorted)
	if !slices.Equal(got, sorted) {
		t.Fatalf("unexpected entries in %s: got %v want %v", dir, got, sorted)
	}
}
