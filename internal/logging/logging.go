// Package logging configures the shared logrus logger used across
// nfosink. Output goes to stderr and, when a log directory is
// available, to a session log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LogPath returns the path of the session log file
func LogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local/share/nfosink/nfosink.log"), nil
}

// New returns a logger writing to stderr. When a log file can be
// opened it is written too; failure to open it is not fatal.
func New(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	writers := []io.Writer{os.Stderr}
	if f := openLogFile(); f != nil {
		writers = append(writers, f)
	}
	log.SetOutput(io.MultiWriter(writers...))

	return log
}

func openLogFile() *os.File {
	path, err := LogPath()
	if err != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}
