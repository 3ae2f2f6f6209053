package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOoreErrorString(t *testing.T) {
	err := New("state.New", KindReservedKey, "put", ErrReservedKey)
	assert.Equal(t, `state.New [reserved-key] key="put": key is reserved by the state container`, err.Error())

	noKey := &OoreError{Op: "core.UseState", Kind: KindMisuse, Err: ErrOutsideRender}
	assert.Equal(t, "core.UseState [misuse]: hook called outside a render pass", noKey.Error())
}

func TestOoreErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New("state.New", KindReservedKey, "put", ErrReservedKey))
	assert.True(t, Is(err, ErrReservedKey))

	var oe *OoreError
	require.True(t, As(err, &oe))
	assert.Equal(t, "put", oe.Key)
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindReservedKey, "reserved-key"},
		{KindMisuse, "misuse"},
		{KindHookOrder, "hook-order"},
		{KindUnknownKey, "unknown-key"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindMissingSlotName, "missing-slot-name"},
		{KindMissingRequiredSlot, "missing-required-slot"},
		{KindInvalidChild, "invalid-child"},
		{KindDuplicateSlotName, "duplicate-slot-name"},
		{KindUnmountedUpdate, "unmounted-update"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String(), "ErrorKind(%d)", tt.kind)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	assert.Equal(t, "panic: test panic", err.Error())

	err.Op = "core.Effect"
	assert.Equal(t, "panic in core.Effect: test panic", err.Error())
}

func TestRenderErrorString(t *testing.T) {
	err := &RenderError{Component: "Counter", Recovered: "nil pointer dereference"}
	assert.Equal(t, "panic in Counter.Render(): nil pointer dereference", err.Error())

	err = &RenderError{Component: "Counter", Err: ErrHookOrder}
	assert.Contains(t, err.Error(), "error in Counter.Render()")
	assert.True(t, Is(err, ErrHookOrder))

	err = &RenderError{Component: "Counter"}
	assert.Equal(t, "unknown error in Counter.Render()", err.Error())
}

func TestReport(t *testing.T) {
	rec := &Recorder{}
	defer rec.Install()()

	Report(&OoreError{Op: "test.op", Kind: KindMisuse, Err: ErrOutsideRender})

	errs := rec.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "test.op", errs[0].Op)
	assert.False(t, errs[0].Timestamp.IsZero())
}

func TestReportRenderError(t *testing.T) {
	rec := &Recorder{}
	defer rec.Install()()

	ReportRenderError(&RenderError{Component: "Test", Recovered: "boom"})

	errs := rec.RenderErrors()
	require.Len(t, errs, 1)
	assert.Equal(t, "Test", errs[0].Component)
	assert.False(t, errs[0].Timestamp.IsZero())
}

func TestReportDiagnosticRespectsMode(t *testing.T) {
	rec := &Recorder{}
	defer rec.Install()()
	defer SetDevMode(DevMode())

	SetDevMode(true)
	Diagnosef("slots.BuildAliasLookup", KindMissingSlotName, "header", "no slot name for %q", "header")
	require.Len(t, rec.Diagnostics(), 1)
	assert.Equal(t, `no slot name for "header"`, rec.Diagnostics()[0].Message)

	SetDevMode(false)
	Diagnosef("slots.BuildAliasLookup", KindMissingSlotName, "body", "no slot name")
	ReportDiagnostic(&Diagnostic{Op: "x", Kind: KindInvalidChild})
	assert.Len(t, rec.Diagnostics(), 1)
}

func TestRecover(t *testing.T) {
	rec := &Recorder{}
	defer rec.Install()()

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	panics := rec.Panics()
	require.Len(t, panics, 1)
	assert.Equal(t, "intentional test panic", panics[0].Value)
	assert.Equal(t, "test.recover", panics[0].Op)
}

func TestRecoverWithCallback(t *testing.T) {
	rec := &Recorder{}
	defer rec.Install()()

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()

	assert.Equal(t, 42, got)
	assert.Len(t, rec.Panics(), 1)
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	require.NotEmpty(t, stack)
	assert.Contains(t, stack, "testing")
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	require.NotNil(t, DefaultHandler)
	assert.IsType(t, &LogHandler{}, DefaultHandler)
}

func TestRecorderReset(t *testing.T) {
	rec := &Recorder{}
	rec.HandleDiagnostic(&Diagnostic{Kind: KindInvalidChild})
	rec.HandleDiagnostic(&Diagnostic{Kind: KindMissingRequiredSlot})
	assert.Len(t, rec.DiagnosticsOf(KindInvalidChild), 1)

	rec.Reset()
	assert.Empty(t, rec.Diagnostics())
}

func TestTee(t *testing.T) {
	first, second := &Recorder{}, &Recorder{}
	h := Tee(first, nil, second)

	h.HandleError(&OoreError{Kind: KindMisuse})
	h.HandlePanic(&PanicError{Value: "x"})
	h.HandleRenderError(&RenderError{Component: "Card"})
	h.HandleDiagnostic(&Diagnostic{Kind: KindInvalidChild})

	for _, rec := range []*Recorder{first, second} {
		assert.Len(t, rec.Errors(), 1)
		assert.Len(t, rec.Panics(), 1)
		assert.Len(t, rec.RenderErrors(), 1)
		assert.Len(t, rec.Diagnostics(), 1)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Verbose: true}

	h.HandleError(&OoreError{Op: "state.New", Kind: KindReservedKey, Key: "put", Err: ErrReservedKey, StackTrace: "frame"})
	h.HandleDiagnostic(&Diagnostic{Op: "slots.PartitionChildren", Kind: KindMissingRequiredSlot, Subject: "body", Message: "missing required slot"})
	h.HandleRenderError(&RenderError{Component: "Card", Recovered: "boom"})
	h.HandlePanic(&PanicError{Op: "core.Effect", Value: "bad"})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "key=put")
	assert.Contains(t, out, "stack=frame")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=missing-required-slot")
	assert.Contains(t, out, "component=Card")
	assert.Contains(t, out, "op=core.Effect")
}

func TestLogHandlerNilSafe(t *testing.T) {
	h := &LogHandler{}
	h.HandleError(nil)
	h.HandlePanic(nil)
	h.HandleRenderError(nil)
	h.HandleDiagnostic(nil)
}

func TestZapHandler(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewZapHandler(zap.New(core), false)

	h.HandleError(New("state.New", KindReservedKey, "put", ErrReservedKey))
	h.HandleDiagnostic(&Diagnostic{Op: "slots.BuildAliasLookup", Kind: KindMissingSlotName, Subject: "x", Message: "no slot name"})

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "put", entries[0].ContextMap()["key"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "no slot name", entries[1].Message)
	assert.Equal(t, "missing-slot-name", entries[1].ContextMap()["kind"])
}
