package errors

import (
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Report sends an error to h. If err.Timestamp is zero, it is set to the
// current time. A nil handler or error is ignored.
func Report(h ErrorHandler, err error) {
	if h == nil || err == nil {
		return
	}
	var panicErr *PanicError
	if As(err, &panicErr) {
		h.HandlePanic(panicErr)
		return
	}
	var pe *PietError
	if !As(err, &pe) {
		pe = &PietError{Kind: KindUnknown, Code: ErrUnspecified, Err: err}
	}
	if pe.Timestamp.IsZero() {
		pe.Timestamp = time.Now()
	}
	h.HandleError(pe)
}

// RecoverInto is a helper for deferred panic recovery at an error boundary.
// A recovered panic is stored in *errp as a *PanicError.
// Usage: defer errors.RecoverInto("piet.FrameAdapter.BindModel", &err)
func RecoverInto(op string, errp *error) {
	if r := recover(); r != nil {
		p := &PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		}
		if errp != nil {
			*errp = p
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
