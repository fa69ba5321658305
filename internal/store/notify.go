package store

import (
	"context"

	"github.com/charmbracelet/log"
)

// Notifier receives failures for display. Cancellations are never passed to it.
type Notifier interface {
	Notify(err *OpError)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(err *OpError)

func (f NotifierFunc) Notify(err *OpError) { f(err) }

// LogNotifier reports failures at error level.
func LogNotifier(l *log.Logger) Notifier {
	return NotifierFunc(func(err *OpError) {
		l.Error(err.Message(), "op", err.Op)
	})
}

// Recorder journals mutation attempts. It is called once per Add, Update or Delete that reached
// the remote, with err set when the attempt failed.
type Recorder interface {
	Record(ctx context.Context, op Op, contactID int64, err error) error
}

// RecorderFunc adapts a function to [Recorder].
type RecorderFunc func(ctx context.Context, op Op, contactID int64, err error) error

func (f RecorderFunc) Record(ctx context.Context, op Op, contactID int64, err error) error {
	return f(ctx, op, contactID, err)
}
