// Package loader walks an archive.Source, matches entry names against the
// configured filename patterns, parses every matching entry, and returns the
// results keyed by the parameters embedded in the filenames.
//
// Loads are all-or-nothing: one malformed entry fails the whole call. Entries
// that match no pattern are skipped silently; archives routinely contain
// readmes and unrelated files.
package loader
