package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root zerolog logger. dev enables debug output.
func New(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "dev" {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "feedback-survey").Logger().Level(level)
}
