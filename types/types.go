package types

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Log levels accepted on the command line and in the config file
const (
	LogDebug = "debug"
	LogInfo  = "info"
	LogWarn  = "warn"
	LogError = "error"
)

// NewLogger returns a console logger writing to out at the given level.
// An empty level means info.
func NewLogger(level string, out io.Writer) (zerolog.Logger, error) {
	if level == "" {
		level = LogInfo
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
