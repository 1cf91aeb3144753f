package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log field names shared across the service
const (
	COMPONENT = "component"
	ID        = "id"
	COUNT     = "count"
)

// Setup configures the global zerolog logger for the given mode. dev writes
// coloured console output at debug level, anything else writes JSON at info.
func Setup(mode string) zerolog.Logger {
	return SetupWriter(mode, os.Stdout)
}

// SetupWriter is Setup with an explicit destination
func SetupWriter(mode string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level := zerolog.InfoLevel
	out := w
	if mode == "dev" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

// Component returns the global logger tagged with component=name
func Component(name string) zerolog.Logger {
	return log.With().Str(COMPONENT, name).Logger()
}

// GormWriter adapts a zerolog logger to gorm's logger.Writer
type GormWriter struct {
	Logger zerolog.Logger
}

// Printf implements gorm's logger.Writer
func (w GormWriter) Printf(format string, args ...interface{}) {
	w.Logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// FiberWriter adapts a zerolog logger to the io.Writer fiber's access log expects
type FiberWriter struct {
	Logger zerolog.Logger
}

// Write implements io.Writer, one access log line per call
func (w FiberWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.Logger.Info().Msg(string(p))
	return n, nil
}
