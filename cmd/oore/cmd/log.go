package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-drift/oore/cmd/oore/internal/config"
	"github.com/go-drift/oore/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// setupDiagnostics installs the global error handler and mode described by
// cfg, writing to w. The returned function restores the defaults.
func setupDiagnostics(cfg *config.Resolved, w io.Writer) (func(), error) {
	handler, sync, err := newHandler(cfg, w)
	if err != nil {
		return nil, err
	}
	errors.SetDevMode(!cfg.Production())
	errors.SetHandler(handler)
	return func() {
		sync()
		errors.SetHandler(nil)
		errors.SetDevMode(true)
	}, nil
}

func newHandler(cfg *config.Resolved, w io.Writer) (errors.ErrorHandler, func(), error) {
	switch cfg.Logger {
	case "zap":
		logger := newZapLogger(cfg, w)
		return errors.NewZapHandler(logger, cfg.Verbose), func() { _ = logger.Sync() }, nil
	case "slog", "":
		return &errors.LogHandler{Logger: newSlogLogger(cfg, w), Verbose: cfg.Verbose}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown logger %q", cfg.Logger)
}

func newSlogLogger(cfg *config.Resolved, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Verbose {
		opts.Level = slog.LevelDebug
	}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newZapLogger(cfg *config.Resolved, w io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}
	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).With(zap.String("mode", cfg.Mode))
}
