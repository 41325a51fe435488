// Package log provides file-backed loggers for the TUI. Writing to stdout or
// stderr would corrupt the bubbletea render, so everything goes to a log file
// in the config directory.
package log

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	InfoLog    = log.New(io.Discard, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(io.Discard, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog   = log.New(io.Discard, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

var logFile *os.File

// Initialize opens the log file and points the package loggers at it. Call
// once at startup; before it runs (and if it fails) the loggers silently
// discard, which keeps library code free of nil checks.
func Initialize() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(homeDir, ".config", "helpdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}

	f, err := os.OpenFile(filepath.Join(dir, "helpdeck.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}

	logFile = f
	InfoLog.SetOutput(f)
	WarningLog.SetOutput(f)
	ErrorLog.SetOutput(f)
}

// Close flushes and closes the log file. Call on shutdown.
func Close() {
	if logFile == nil {
		return
	}
	InfoLog.SetOutput(io.Discard)
	WarningLog.SetOutput(io.Discard)
	ErrorLog.SetOutput(io.Discard)
	_ = logFile.Close()
	logFile = nil
}
