package errors

import (
	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes errors to a zerolog logger.
type LogHandler struct {
	Logger zerolog.Logger
	// Verbose includes stack traces for panics.
	Verbose bool
}

// HandleError logs a PietError. Soft errors are logged at warn level.
func (h *LogHandler) HandleError(err *PietError) {
	if err == nil {
		return
	}
	event := h.Logger.Error()
	if err.Kind == KindSoft {
		event = h.Logger.Warn()
	}
	event.Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Str("code", err.Code.String()).
		Err(err.Err).
		Msg("piet error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	event := h.Logger.Error().Str("op", err.Op).Interface("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		event = event.Str("stack", err.StackTrace)
	}
	event.Msg("piet panic")
}
