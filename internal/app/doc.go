// Package app wires the loader together: it merges file and flag
// configuration, builds the logger, opens the archive source, and runs a
// load to completion. It is decoupled from any specific entrypoint so tests
// can drive it directly.
package app
