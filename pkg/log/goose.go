package log

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger routes goose migration output into the request logger,
// tagged so schema changes can be picked out of the service log.
type GooseLogger struct {
	logger zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx).With().Str("component", "migrations").Logger(),
	}
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msgf(trimLine(format), v...)
}

// Printf logs applied migrations at info and goose's chatter at debug.
func (g *GooseLogger) Printf(format string, v ...any) {
	ev := g.logger.Debug()
	if strings.HasPrefix(format, "OK ") {
		ev = g.logger.Info()
	}
	ev.Msgf(trimLine(format), v...)
}

// goose terminates its formats with a newline; zerolog adds its own.
func trimLine(format string) string {
	return strings.TrimRight(format, "\n")
}
