// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package logging configures the installer's diagnostic logging.
//
// Diagnostics are separate from installer output: the console package
// renders what users see, while this log captures what happened for
// debugging failed installs. Debug logging is enabled with --debug or
// the RBINSTALL_DEBUG environment variable.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger.
//
// Log events always append to a file under the XDG state directory so
// support can reconstruct a failed install. Console logging on stderr
// stays quiet unless debug is enabled.
func Setup(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	writers := []io.Writer{}

	if debug {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		})
	}

	logFile := LogFilePath()

	fileHandle, err := openLogFile(logFile)
	if err == nil {
		writers = append(writers, fileHandle)
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()

		return
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).
		With().
		Timestamp().
		Logger()

	if err != nil {
		log.Warn().
			Err(err).
			Str("path", logFile).
			Msg("Failed to create log file, logging to console only")
	}
}

// GetLogger returns a contextualized logger with the given component
// name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogFilePath returns the path of the installer log file.
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, "rbinstall", "rbinstall.log")
}

func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}
