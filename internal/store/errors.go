package store

import (
	"errors"
)

// ErrClosed is returned by operations started after [Store.Close].
var ErrClosed = errors.New("store closed")

// Op names a store operation.
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// FallbackMessage is the user-facing text for a failed op whose error carries no message.
func (o Op) FallbackMessage() string {
	switch o {
	case OpFetch:
		return "Failed to fetch contacts"
	case OpCreate:
		return "Could not add contact"
	case OpUpdate:
		return "Could not update contact"
	case OpDelete:
		return "Could not delete contact"
	default:
		return "Operation failed"
	}
}

// OpError is a failed remote call made on behalf of a store operation.
type OpError struct {
	Op  Op
	Err error
}

// Message returns the underlying error text, or the op's fallback message when there is none.
func (e *OpError) Message() string {
	if e.Err != nil {
		if msg := e.Err.Error(); msg != "" {
			return msg
		}
	}
	return e.Op.FallbackMessage()
}

func (e *OpError) Error() string {
	return e.Message()
}

func (e *OpError) Unwrap() error {
	return e.Err
}
