// Package errors provides structured error handling for the Piet engine.
//
// Fatal errors abort the operation that produced them and propagate to the
// nearest boundary (normally the frame adapter). Soft errors are only
// recorded in the debug logger and never interrupt binding.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindFatal indicates an unrecoverable model or state violation.
	KindFatal
	// KindSoft indicates a recoverable condition that was only reported.
	KindSoft
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindSoft:
		return "soft"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ErrorCode is the engine-wide code attached to every reported problem.
// Codes are stable; hosts log them through the event logger.
type ErrorCode int

const (
	ErrUnspecified ErrorCode = iota
	ErrMissingBindingValue
	ErrMissingBindingContent
	ErrNoBindingValues
	ErrDuplicateBindingValue
	ErrDuplicateTemplate
	ErrDuplicateStyle
	ErrMissingTemplate
	ErrMissingStylesheet
	ErrMissingElementContents
	ErrMissingFrameContext
	ErrUnsupportedFeature
	ErrAdapterState
	ErrAdaptersPerContent
	ErrUnhandledContentType
	ErrGridCellWidthWithoutContents
	ErrMissingFont
	ErrInvalidDocument
	ErrHostPanic
)

var codeNames = map[ErrorCode]string{
	ErrUnspecified:                  "ERR_UNSPECIFIED",
	ErrMissingBindingValue:          "ERR_MISSING_BINDING_VALUE",
	ErrMissingBindingContent:        "ERR_MISSING_BINDING_CONTENT",
	ErrNoBindingValues:              "ERR_NO_BINDING_VALUES",
	ErrDuplicateBindingValue:        "ERR_DUPLICATE_BINDING_VALUE",
	ErrDuplicateTemplate:            "ERR_DUPLICATE_TEMPLATE",
	ErrDuplicateStyle:               "ERR_DUPLICATE_STYLE",
	ErrMissingTemplate:              "ERR_MISSING_TEMPLATE",
	ErrMissingStylesheet:            "ERR_MISSING_STYLESHEET",
	ErrMissingElementContents:       "ERR_MISSING_ELEMENT_CONTENTS",
	ErrMissingFrameContext:          "ERR_MISSING_FRAME_CONTEXT",
	ErrUnsupportedFeature:           "ERR_UNSUPPORTED_FEATURE",
	ErrAdapterState:                 "ERR_ADAPTER_STATE",
	ErrAdaptersPerContent:           "ERR_ADAPTERS_PER_CONTENT",
	ErrUnhandledContentType:         "ERR_UNHANDLED_CONTENT_TYPE",
	ErrGridCellWidthWithoutContents: "ERR_GRID_CELL_WIDTH_WITHOUT_CONTENTS",
	ErrMissingFont:                  "ERR_MISSING_FONT",
	ErrInvalidDocument:              "ERR_INVALID_DOCUMENT",
	ErrHostPanic:                    "ERR_HOST_PANIC",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ERR_CODE(%d)", int(c))
}

// PietError represents a structured error raised by the engine.
type PietError struct {
	// Op is the operation that failed (e.g., "frame.ElementBindingValue").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Code is the stable error code reported to hosts.
	Code ErrorCode
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PietError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s [%s %s]: %v", e.Op, e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("[%s %s]: %v", e.Kind, e.Code, e.Err)
}

func (e *PietError) Unwrap() error {
	return e.Err
}

// Message returns the bare underlying message without operation or code.
func (e *PietError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Fatalf returns a fatal PietError with a formatted message.
func Fatalf(code ErrorCode, format string, args ...any) error {
	return &PietError{
		Kind:      KindFatal,
		Code:      code,
		Err:       fmt.Errorf(format, args...),
		Timestamp: time.Now(),
	}
}

// WithOp annotates a PietError with the failing operation. Errors that are
// not PietErrors are wrapped as fatal errors with ErrUnspecified. The
// innermost operation wins when one is already set.
func WithOp(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PietError
	if stderrors.As(err, &pe) {
		if pe.Op == "" {
			pe.Op = op
		}
		return err
	}
	return &PietError{Op: op, Kind: KindFatal, Code: ErrUnspecified, Err: err, Timestamp: time.Now()}
}

// IsFatal reports whether err is, or wraps, a fatal PietError or a
// recovered panic.
func IsFatal(err error) bool {
	var pe *PietError
	if stderrors.As(err, &pe) {
		return pe.Kind == KindFatal
	}
	var panicErr *PanicError
	return stderrors.As(err, &panicErr)
}

// CodeOf extracts the error code from err, or ErrUnspecified.
func CodeOf(err error) ErrorCode {
	var pe *PietError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	var panicErr *PanicError
	if stderrors.As(err, &panicErr) {
		return ErrHostPanic
	}
	return ErrUnspecified
}

// MessageOf returns the human readable message of err without decoration.
func MessageOf(err error) string {
	var pe *PietError
	if stderrors.As(err, &pe) {
		return pe.Message()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "piet.FrameAdapter.BindModel").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors caught at an error boundary.
type ErrorHandler interface {
	// HandleError is called when a fatal or soft error reaches a boundary.
	HandleError(err *PietError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is and As are re-exported so callers need a single errors import.
var (
	Is = stderrors.Is
	As = stderrors.As
)
