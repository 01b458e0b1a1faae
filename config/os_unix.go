//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// EnableColorOutput reports if log console (stderr) could be colorized.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
