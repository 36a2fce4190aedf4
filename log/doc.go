// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Every event emitted by the patch engine and the compiler wrapper flows
// through a [Logger]. Loggers are values: configuration is fixed at creation
// time with functional options, and derived loggers are created with
// [Logger.Wrap] (new options) or [Logger.With] (new attributes).
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("patched selector", slog.String("selector", "gpu->model"))
//	logger.Error("patch failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Default Logger
//
// The package maintains a default logger used by the package-level functions
// ([Info], [ErrorContext], ...). It is reconfigured with [Config] and can be
// handed to components that take an explicit [Logger] via [Default].
//
// # Supported Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level are
// discarded.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and [FormatText].
// Either may be rendered "pretty" ([WithPretty]) with ANSI colors for
// interactive terminals.
package log
