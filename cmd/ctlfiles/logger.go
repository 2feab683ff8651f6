package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds the process logger. Log level precedence (highest to
// lowest):
//  1. --log-level flag (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. LOG_LEVEL environment variable
//  5. Default (info)
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(determineLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// determineLogLevel applies the precedence rules.
func determineLogLevel() string {
	if flagLogLevel != "" {
		return validateLogLevel(flagLogLevel)
	}

	if flagVerbose && flagQuiet {
		// Both specified: warn user and use quiet (more restrictive).
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	}
	if flagVerbose {
		return "debug"
	}
	if flagQuiet {
		return "warn"
	}

	if env := os.Getenv("LOG_LEVEL"); env != "" {
		return validateLogLevel(env)
	}
	return "info"
}

// validateLogLevel returns a valid level, falling back to info on
// unrecognized input.
func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}
	fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", level)
	return "info"
}
