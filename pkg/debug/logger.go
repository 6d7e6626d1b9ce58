// Package debug records problems found while binding a frame so they can be
// surfaced to developers and logged to the host.
package debug

import (
	"sync"

	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/logging"
)

// Severity of a recorded message.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "WARNING"
}

// Behavior selects how recorded messages are surfaced.
type Behavior int

const (
	// BehaviorSilent records messages but never shows them.
	BehaviorSilent Behavior = iota
	// BehaviorWarning shows errors in a debug view.
	BehaviorWarning
	// BehaviorVerbose shows errors and warnings in a debug view.
	BehaviorVerbose
	// BehaviorStrict turns every ERROR message into a fatal error.
	BehaviorStrict
)

// ParseBehavior maps a configuration name to a Behavior.
func ParseBehavior(name string) (Behavior, bool) {
	switch name {
	case "", "silent":
		return BehaviorSilent, true
	case "warning":
		return BehaviorWarning, true
	case "verbose":
		return BehaviorVerbose, true
	case "strict":
		return BehaviorStrict, true
	}
	return BehaviorSilent, false
}

func (b Behavior) String() string {
	switch b {
	case BehaviorWarning:
		return "warning"
	case BehaviorVerbose:
		return "verbose"
	case BehaviorStrict:
		return "strict"
	default:
		return "silent"
	}
}

// ShowsDebugViews reports whether recorded messages are rendered.
func (b Behavior) ShowsDebugViews() bool {
	return b != BehaviorSilent
}

// Shows reports whether messages of severity sev are rendered.
func (b Behavior) Shows(sev Severity) bool {
	switch b {
	case BehaviorSilent:
		return false
	case BehaviorWarning:
		return sev == SeverityError
	default:
		return true
	}
}

// Message is one recorded problem.
type Message struct {
	Severity Severity
	Code     pieterrors.ErrorCode
	Text     string
}

// Logger accumulates messages for one frame bind. It is safe for
// concurrent use; asset callbacks may report from other goroutines.
type Logger struct {
	mu       sync.Mutex
	messages []Message
	log      *logging.Logger
}

// NewLogger returns a Logger that also writes each message to log, which
// may be nil.
func NewLogger(log *logging.Logger) *Logger {
	return &Logger{log: log}
}

// RecordMessage stores a message.
func (l *Logger) RecordMessage(sev Severity, code pieterrors.ErrorCode, text string) {
	l.mu.Lock()
	l.messages = append(l.messages, Message{Severity: sev, Code: code, Text: text})
	l.mu.Unlock()

	entry := l.log.With("code", code.String())
	if sev == SeverityError {
		entry.Error(nil, text)
	} else {
		entry.Warn(text)
	}
}

// Messages returns the recorded messages of severity sev in record order.
func (l *Logger) Messages(sev Severity) []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Message
	for _, m := range l.messages {
		if m.Severity == sev {
			out = append(out, m)
		}
	}
	return out
}

// ErrorCodes returns the codes of every recorded message in record order.
func (l *Logger) ErrorCodes() []pieterrors.ErrorCode {
	l.mu.Lock()
	defer l.mu.Unlock()
	codes := make([]pieterrors.ErrorCode, 0, len(l.messages))
	for _, m := range l.messages {
		codes = append(codes, m.Code)
	}
	return codes
}

// Clear drops all recorded messages.
func (l *Logger) Clear() {
	l.mu.Lock()
	l.messages = nil
	l.mu.Unlock()
}
