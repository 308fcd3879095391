// Package log provides structured console/JSON logging for kmego.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers, one per subsystem.
var (
	Chain     zerolog.Logger
	Mempool   zerolog.Logger
	Consensus zerolog.Logger
	Wire      zerolog.Logger
	Node      zerolog.Logger
	Wallet    zerolog.Logger
	Miner     zerolog.Logger
)

func init() {
	Logger = NewConsoleLogger(os.Stdout, "info")
	initComponentLoggers()
}

// Init replaces the global logger. When jsonOutput is false, logs render as
// colored console lines; file, if non-empty, always receives JSON so it
// stays machine-parsable regardless of the console format.
func Init(level string, jsonOutput bool, file string) error {
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}

		var consoleWriter io.Writer = os.Stdout
		if !jsonOutput {
			consoleWriter = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		}

		multi := zerolog.MultiLevelWriter(consoleWriter, f)
		Logger = zerolog.New(multi).Level(parseLevel(level)).With().Timestamp().Logger()
	} else if jsonOutput {
		Logger = NewJSONLogger(os.Stdout, level)
	} else {
		Logger = NewConsoleLogger(os.Stdout, level)
	}

	initComponentLoggers()
	return nil
}

// NewConsoleLogger creates a colored console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(output).Level(parseLevel(level)).With().Timestamp().Logger()
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func initComponentLoggers() {
	Chain = Logger.With().Str("component", "chain").Logger()
	Mempool = Logger.With().Str("component", "mempool").Logger()
	Consensus = Logger.With().Str("component", "consensus").Logger()
	Wire = Logger.With().Str("component", "wire").Logger()
	Node = Logger.With().Str("component", "node").Logger()
	Wallet = Logger.With().Str("component", "wallet").Logger()
	Miner = Logger.With().Str("component", "miner").Logger()
}

// WithComponent returns a logger tagged with an arbitrary component name,
// for call sites that don't map onto one of the package-level loggers.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}
