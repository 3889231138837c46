// Package logging builds the zerolog.Logger every binary uses, mirroring
// the original's spdlog setup: a colored stderr sink plus a rotating file
// sink; New drops the stderr sink when quiet is set.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation mirrors the original's LOG_MAX_FILE_SIZE/LOG_MAX_FILE_COUNT
// constants (20MB, 20 files).
const (
	maxSizeMB  = 20
	maxBackups = 20
)

// New builds a logger writing to logPath (rotated) and, unless quiet is
// set, to a colored stderr console writer. quiet is set by --daemonize,
// standing in for the original's fork-and-detach: the practical effect
// from a caller's perspective is "no console output, survives terminal
// close" without Go actually forking the process.
func New(logPath string, quiet bool) zerolog.Logger {
	fileWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}

	var w io.Writer = fileWriter
	if !quiet {
		console := zerolog.ConsoleWriter{Out: os.Stderr}
		w = zerolog.MultiLevelWriter(console, fileWriter)
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return zerolog.New(w).With().Timestamp().Logger()
}
