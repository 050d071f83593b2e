// Package notify sends outbound SMS. The contract everywhere in the app is
// best-effort: callers log a failure and move on, the triggering operation
// has already committed.
package notify

import (
	"context"
	"log"
)

// Port is the outbound message sender handlers and services depend on.
type Port interface {
	Send(ctx context.Context, phone, message string) error
}

// Logger writes messages to the process log instead of dispatching them.
// Used when no SMS gateway is configured and as the dev-mode sender.
type Logger struct{}

// NewLogger returns a log-only sender.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Send(_ context.Context, phone, message string) error {
	log.Printf("SMS (not dispatched) to %s: %s", phone, message)
	return nil
}
