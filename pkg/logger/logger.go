package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init configures the process logger. Development gets human-readable
// console output, everything else structured JSON.
func Init(environment string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		return
	}

	log = zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

func Debug(msg string, args ...any) {
	withFields(log.Debug(), args).Msg(msg)
}

func Info(msg string, args ...any) {
	withFields(log.Info(), args).Msg(msg)
}

func Warn(msg string, args ...any) {
	withFields(log.Warn(), args).Msg(msg)
}

func Error(msg string, args ...any) {
	withFields(log.Error(), args).Msg(msg)
}

func Fatal(msg string, args ...any) {
	withFields(log.Fatal(), args).Msg(msg)
}

// withFields interprets args as alternating key/value pairs; a trailing odd
// value (commonly a bare error) lands under "detail".
func withFields(e *zerolog.Event, args []any) *zerolog.Event {
	i := 0
	for ; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return e.Interface("details", args[i:])
		}
		e = e.Interface(key, args[i+1])
	}
	if i < len(args) {
		e = e.Interface("detail", args[i])
	}
	return e
}
