// Package notify is the capability boundary toward the mail/SMS dispatch
// system. The import pipeline only ever talks to the interface, so it and its
// tests run without any live network dependency.
package notify

import (
	"context"
	"fmt"
	"io"
)

type Notifier interface {
	// SendWelcome greets a newly imported member.
	SendWelcome(ctx context.Context, email, firstName string) error
	// SendVerification asks a member to verify their imported details.
	SendVerification(ctx context.Context, email, memberID string) error
}

// Noop discards every notification. It is the default for imports run from
// the CLI and for tests.
type Noop struct{}

func (Noop) SendWelcome(context.Context, string, string) error      { return nil }
func (Noop) SendVerification(context.Context, string, string) error { return nil }

// Logger writes one line per notification instead of dispatching it. Enabled
// via import.notify_welcome until a live mail transport is configured.
type Logger struct {
	Out io.Writer
}

func NewLogger(out io.Writer) *Logger {
	return &Logger{Out: out}
}

func (l *Logger) SendWelcome(_ context.Context, email, firstName string) error {
	_, err := fmt.Fprintf(l.Out, "welcome -> %s (%s)\n", email, firstName)
	return err
}

func (l *Logger) SendVerification(_ context.Context, email, memberID string) error {
	_, err := fmt.Fprintf(l.Out, "verification -> %s (member %s)\n", email, memberID)
	return err
}
