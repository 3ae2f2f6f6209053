package errors

import "sync"

// Recorder is an ErrorHandler that keeps every report in memory.
// It is intended for tests and for tools that print reports after a run.
type Recorder struct {
	mu           sync.Mutex
	errors       []*OoreError
	panics       []*PanicError
	renderErrors []*RenderError
	diagnostics  []*Diagnostic
}

// Install sets r as the global handler and returns a function restoring the
// previous one.
func (r *Recorder) Install() func() {
	previous := getHandler()
	SetHandler(r)
	return func() { SetHandler(previous) }
}

func (r *Recorder) HandleError(err *OoreError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *Recorder) HandlePanic(err *PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

func (r *Recorder) HandleRenderError(err *RenderError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderErrors = append(r.renderErrors, err)
}

func (r *Recorder) HandleDiagnostic(d *Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// Errors returns the recorded fatal errors.
func (r *Recorder) Errors() []*OoreError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*OoreError(nil), r.errors...)
}

// Panics returns the recorded panics.
func (r *Recorder) Panics() []*PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*PanicError(nil), r.panics...)
}

// RenderErrors returns the recorded render errors.
func (r *Recorder) RenderErrors() []*RenderError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*RenderError(nil), r.renderErrors...)
}

// Diagnostics returns the recorded diagnostics.
func (r *Recorder) Diagnostics() []*Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Diagnostic(nil), r.diagnostics...)
}

// DiagnosticsOf returns the recorded diagnostics of the given kind.
func (r *Recorder) DiagnosticsOf(kind ErrorKind) []*Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Diagnostic
	for _, d := range r.diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = nil
	r.panics = nil
	r.renderErrors = nil
	r.diagnostics = nil
}

// Tee returns a handler forwarding every report to each of handlers, in
// order. Nil handlers are skipped.
func Tee(handlers ...ErrorHandler) ErrorHandler {
	var live multiHandler
	for _, h := range handlers {
		if h != nil {
			live = append(live, h)
		}
	}
	return live
}

type multiHandler []ErrorHandler

func (m multiHandler) HandleError(err *OoreError) {
	for _, h := range m {
		h.HandleError(err)
	}
}

func (m multiHandler) HandlePanic(err *PanicError) {
	for _, h := range m {
		h.HandlePanic(err)
	}
}

func (m multiHandler) HandleRenderError(err *RenderError) {
	for _, h := range m {
		h.HandleRenderError(err)
	}
}

func (m multiHandler) HandleDiagnostic(d *Diagnostic) {
	for _, h := range m {
		h.HandleDiagnostic(d)
	}
}
