package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/slate/pkg/utils"
)

// setupLogger points the global logger at the console, an optional log
// file and, while the TUI owns the terminal, the deferred buffer instead of
// the console. The returned func closes the log file, if one was opened.
func setupLogger(level, logFile string, deferred *utils.DeferredWriter) (func() error, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	sinks := []io.Writer{}
	if deferred != nil {
		sinks = append(sinks, deferred)
	} else {
		sinks = append(sinks, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	closeLog := func() error { return nil }
	if logFile != "" {
		file, err := openLogFile(logFile)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, file)
		closeLog = file.Close
	}

	var out io.Writer = sinks[0]
	if len(sinks) > 1 {
		out = zerolog.MultiLevelWriter(sinks...)
	}

	log.Logger = log.Output(out).Level(parsed)
	return closeLog, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
