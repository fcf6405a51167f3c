package http

import (
	"errors"
	"fmt"
)

// ErrKind classifies an outbound call failure.
type ErrKind string

const (
	// KindTransport covers connection and timeout failures.
	KindTransport ErrKind = "transport"
	// KindProtocol covers non-success HTTP status codes.
	KindProtocol ErrKind = "protocol"
	// KindUnexpected covers everything else, with diagnostic detail attached.
	KindUnexpected ErrKind = "unexpected"
)

// FetchError represents a failed outbound call with its classification.
type FetchError struct {
	Kind   ErrKind
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == KindProtocol {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// TransportError wraps a connection or timeout failure.
func TransportError(op string, err error) *FetchError {
	return &FetchError{Kind: KindTransport, Op: op, Err: err}
}

// ProtocolError wraps a non-success status code.
func ProtocolError(op string, status int) *FetchError {
	return &FetchError{Kind: KindProtocol, Op: op, Status: status}
}

// UnexpectedError wraps any other failure.
func UnexpectedError(op string, err error) *FetchError {
	return &FetchError{Kind: KindUnexpected, Op: op, Err: err}
}

// UnexpectedErrorf wraps any other failure with formatting.
func UnexpectedErrorf(op, format string, a ...interface{}) *FetchError {
	return UnexpectedError(op, fmt.Errorf(format, a...))
}

// KindOf returns the classification of err, or KindUnexpected when err does
// not carry one.
func KindOf(err error) ErrKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnexpected
}
