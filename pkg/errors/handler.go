package errors

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with verbose=false.
	DefaultHandler ErrorHandler = NewLogHandler(false)

	handlerMu sync.RWMutex

	devMode atomic.Bool
)

func init() {
	devMode.Store(true)
}

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = NewLogHandler(false)
	} else {
		DefaultHandler = h
	}
}

// getHandler returns the current error handler.
func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// SetDevMode switches between development (diagnostics reported) and
// production (diagnostics dropped) behavior. Fatal errors are reported in
// both modes.
func SetDevMode(dev bool) {
	devMode.Store(dev)
}

// DevMode reports whether advisory diagnostics are forwarded to the handler.
func DevMode() bool {
	return devMode.Load()
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *OoreError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// ReportRenderError sends a render error to the global handler.
func ReportRenderError(err *RenderError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleRenderError(err)
	}
}

// ReportDiagnostic sends an advisory diagnostic to the global handler.
// It is a no-op in production mode.
func ReportDiagnostic(d *Diagnostic) {
	if d == nil || !DevMode() {
		return
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleDiagnostic(d)
	}
}

// Diagnosef builds and reports a diagnostic in one call.
func Diagnosef(op string, kind ErrorKind, subject any, format string, args ...any) {
	if !DevMode() {
		return
	}
	ReportDiagnostic(&Diagnostic{
		Op:      op,
		Kind:    kind,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("operation.name")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// RecoverWithCallback is like Recover but also calls the provided callback
// with the panic value after reporting it.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
		if callback != nil {
			callback(r)
		}
	}
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
