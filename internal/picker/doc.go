// Package picker asks the user to choose one file from a directory.
//
// Sxiv opens the thumbnail grid of sxiv (or nsxiv) and returns the first file
// the user marked. Fuzzy picks the best fuzzy match for a query among the file
// names, for scripted use. Both report an empty choice as ErrNoSelection.
package picker
