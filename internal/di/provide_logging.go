package di

import (
	"os"

	"github.com/rs/zerolog"
)

// ProvideLogger creates a new zerolog.Logger configured for the runtime environment.
// In CodeBuild or Lambda, it uses JSON format so the build logs stay machine readable.
// In a terminal, it uses console format with pretty printing.
func ProvideLogger(level zerolog.Level) zerolog.Logger {
	if os.Getenv("CODEBUILD_BUILD_ID") != "" || os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		return zerolog.New(os.Stdout).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
