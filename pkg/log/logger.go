// Package log wires zerolog as the structured logger for sanice.
//
// The pipeline emits one localized message per operation, so the default
// output is a human-oriented console writer. Verbosity follows the five
// levels the pipeline exposes: silent, error, warn, info and debug.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Verbosity names accepted by SetVerbosity, mapped to zerolog levels.
var verbosityMap = map[string]zerolog.Level{
	"silent": zerolog.Disabled,
	"error":  zerolog.ErrorLevel,
	"warn":   zerolog.WarnLevel,
	"info":   zerolog.InfoLevel,
	"debug":  zerolog.DebugLevel,
}

// New returns a console logger writing to w at info level.
func New(w io.Writer) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(console).Level(zerolog.InfoLevel)
}

// NewDefault returns the standard sanice logger on stderr.
func NewDefault() zerolog.Logger {
	return New(os.Stderr)
}

// ToLevel maps a verbosity name to a zerolog level. Unknown names fall
// back to info.
func ToLevel(verbosity string) zerolog.Level {
	if lvl, ok := verbosityMap[verbosity]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}

// ValidVerbosity reports whether name is a recognized verbosity level.
func ValidVerbosity(name string) bool {
	_, ok := verbosityMap[name]
	return ok
}
