package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	logAdapter "github.com/nivir/beginner-tutorials/internal/adapters/log"
)

// Logger returns the CLI console logger writing to stderr at level.
func Logger(level string) zerolog.Logger {
	return logAdapter.NewConsoleLogger(os.Stderr, level)
}
