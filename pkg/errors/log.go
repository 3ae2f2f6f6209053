package errors

import (
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that writes structured records through slog.
type LogHandler struct {
	// Logger receives the records. A nil Logger writes text to stderr.
	Logger *slog.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing text records to stderr.
func NewLogHandler(verbose bool) *LogHandler {
	return &LogHandler{
		Logger:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Verbose: verbose,
	}
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger == nil {
		h.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return h.Logger
}

// HandleError logs an OoreError at error level.
func (h *LogHandler) HandleError(err *OoreError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.Any("error", err.Err),
	}
	if err.Key != "" {
		attrs = append(attrs, slog.String("key", err.Key))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("oore error", attrs...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{slog.Any("value", err.Value)}
	if err.Op != "" {
		attrs = append(attrs, slog.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("oore panic", attrs...)
}

// HandleRenderError logs a RenderError at error level.
func (h *LogHandler) HandleRenderError(err *RenderError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("component", err.Component),
		slog.String("error", err.Error()),
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("oore render error", attrs...)
}

// HandleDiagnostic logs a Diagnostic at warn level.
func (h *LogHandler) HandleDiagnostic(d *Diagnostic) {
	if d == nil {
		return
	}
	h.logger().Warn(d.Message,
		slog.String("op", d.Op),
		slog.String("kind", d.Kind.String()),
		slog.Any("subject", d.Subject),
	)
}
