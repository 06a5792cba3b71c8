package logging

import (
	"log/slog"
)

// SetupServeMode installs file-only logging for the MCP server.
// stdout carries JSON-RPC exclusively, so nothing may be written there;
// stderr is left quiet as well because some clients surface it as errors.
func SetupServeMode(path, level string) (func(), error) {
	cfg := Config{
		Level:         level,
		FilePath:      path,
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: false,
	}

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)
	slog.Info("serve_logging_initialized",
		slog.String("log_file", cfg.FilePath),
		slog.String("level", cfg.Level))

	return cleanup, nil
}
