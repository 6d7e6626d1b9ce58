package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPietErrorString(t *testing.T) {
	err := Fatalf(ErrMissingBindingValue, "Parameterized text binding not found for %s", "title")
	assert.Equal(t, "[fatal ERR_MISSING_BINDING_VALUE]: Parameterized text binding not found for title", err.Error())

	annotated := WithOp("frame.ParameterizedTextBindingValue", err)
	assert.Contains(t, annotated.Error(), "frame.ParameterizedTextBindingValue [fatal")
	assert.Equal(t, "Parameterized text binding not found for title", MessageOf(annotated))
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindFatal, "fatal"},
		{KindSoft, "soft"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "ERR_GRID_CELL_WIDTH_WITHOUT_CONTENTS", ErrGridCellWidthWithoutContents.String())
	assert.Equal(t, "ERR_CODE(999)", ErrorCode(999).String())
}

func TestClassification(t *testing.T) {
	fatal := Fatalf(ErrDuplicateTemplate, "Template key '%s' already defined", "t")
	wrapped := fmt.Errorf("binding frame: %w", fatal)

	assert.True(t, IsFatal(wrapped))
	assert.Equal(t, ErrDuplicateTemplate, CodeOf(wrapped))

	plain := fmt.Errorf("plain")
	assert.False(t, IsFatal(plain))
	assert.Equal(t, ErrUnspecified, CodeOf(plain))

	assert.True(t, IsFatal(&PanicError{Value: "boom"}))
	assert.Equal(t, ErrHostPanic, CodeOf(&PanicError{Value: "boom"}))
}

func TestWithOpKeepsInnermostOp(t *testing.T) {
	err := WithOp("inner", Fatalf(ErrAdapterState, "bad"))
	err = WithOp("outer", err)
	var pe *PietError
	require.True(t, As(err, &pe))
	assert.Equal(t, "inner", pe.Op)

	assert.Nil(t, WithOp("op", nil))
	wrapped := WithOp("op", fmt.Errorf("plain"))
	require.True(t, As(wrapped, &pe))
	assert.Equal(t, KindFatal, pe.Kind)
}

func TestPanicErrorString(t *testing.T) {
	assert.Equal(t, "panic: test panic", (&PanicError{Value: "test panic"}).Error())
	assert.Equal(t, "panic in piet.Bind: test panic", (&PanicError{Op: "piet.Bind", Value: "test panic"}).Error())
}

func TestRecoverInto(t *testing.T) {
	run := func() (err error) {
		defer RecoverInto("test.run", &err)
		panic("kaboom")
	}
	err := run()
	var p *PanicError
	require.True(t, As(err, &p))
	assert.Equal(t, "test.run", p.Op)
	assert.Equal(t, "kaboom", p.Value)
	assert.NotEmpty(t, p.StackTrace)
}

type recordingHandler struct {
	errs   []*PietError
	panics []*PanicError
}

func (r *recordingHandler) HandleError(err *PietError)  { r.errs = append(r.errs, err) }
func (r *recordingHandler) HandlePanic(err *PanicError) { r.panics = append(r.panics, err) }

func TestReport(t *testing.T) {
	h := &recordingHandler{}
	Report(h, Fatalf(ErrMissingTemplate, "missing"))
	Report(h, &PanicError{Value: "x"})
	Report(h, fmt.Errorf("plain"))
	Report(nil, fmt.Errorf("ignored"))
	Report(h, nil)

	require.Len(t, h.errs, 2)
	require.Len(t, h.panics, 1)
	assert.Equal(t, KindUnknown, h.errs[1].Kind)
	assert.False(t, h.errs[1].Timestamp.IsZero())
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: zerolog.New(&buf)}
	h.HandleError(&PietError{Op: "op", Kind: KindSoft, Code: ErrMissingStylesheet, Err: fmt.Errorf("gone")})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "ERR_MISSING_STYLESHEET", entry["code"])
	assert.Equal(t, "gone", entry["error"])
}
