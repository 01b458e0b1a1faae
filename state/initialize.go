package state

import (
	"os"
	"time"

	"fracbin/fraction"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:     time.Now(),
		Converter: fraction.New(fraction.DigitLimit),
		Out:       os.Stdout,
	}
}
