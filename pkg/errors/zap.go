package errors

import (
	"fmt"

	"go.uber.org/zap"
)

// ZapHandler is an ErrorHandler that forwards reports to a zap logger.
type ZapHandler struct {
	Logger  *zap.Logger
	Verbose bool
}

// NewZapHandler wraps logger. A nil logger discards everything.
func NewZapHandler(logger *zap.Logger, verbose bool) *ZapHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapHandler{Logger: logger, Verbose: verbose}
}

func (h *ZapHandler) stack(trace string) []zap.Field {
	if !h.Verbose || trace == "" {
		return nil
	}
	return []zap.Field{zap.String("stack", trace)}
}

// HandleError logs an OoreError at error level.
func (h *ZapHandler) HandleError(err *OoreError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.String("kind", err.Kind.String()),
		zap.Error(err.Err),
	}
	if err.Key != "" {
		fields = append(fields, zap.String("key", err.Key))
	}
	h.Logger.Error("oore error", append(fields, h.stack(err.StackTrace)...)...)
}

// HandlePanic logs a PanicError at error level.
func (h *ZapHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.String("value", fmt.Sprint(err.Value)),
	}
	h.Logger.Error("oore panic", append(fields, h.stack(err.StackTrace)...)...)
}

// HandleRenderError logs a RenderError at error level.
func (h *ZapHandler) HandleRenderError(err *RenderError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("component", err.Component),
		zap.String("error", err.Error()),
	}
	h.Logger.Error("oore render error", append(fields, h.stack(err.StackTrace)...)...)
}

// HandleDiagnostic logs a Diagnostic at warn level.
func (h *ZapHandler) HandleDiagnostic(d *Diagnostic) {
	if d == nil {
		return
	}
	h.Logger.Warn(d.Message,
		zap.String("op", d.Op),
		zap.String("kind", d.Kind.String()),
		zap.Any("subject", d.Subject),
	)
}
