package geolib

import (
	"errors"
)

// ErrorKind classifies errors returned by Client operations.
type ErrorKind int

const (
	// KindUnknown is a zero value. Client never returns it itself.
	KindUnknown ErrorKind = iota

	// KindSetup is returned by New if a client cannot be constructed
	// with a given config.
	KindSetup

	// KindTransport covers connection failures and unexpected HTTP
	// statuses other than 429.
	KindTransport

	// KindRateLimit corresponds to HTTP 429: a request quota is
	// exhausted.
	KindRateLimit

	// KindRequest means that a service has responded with an
	// application-level error field.
	KindRequest

	// KindParse means a response body could not be decoded.
	KindParse

	// KindTimeout means a total deadline of a batch operation was
	// exceeded.
	KindTimeout

	// KindLimitExceeded means a request carries more addresses than a
	// service accepts.
	KindLimitExceeded

	// KindDataIntegrity means a resolved country code is missing from
	// one of the reference tables.
	KindDataIntegrity
)

func (e ErrorKind) String() string {
	switch e {
	case KindSetup:
		return "setup error"
	case KindTransport:
		return "transport error"
	case KindRateLimit:
		return "rate limit exceeded"
	case KindRequest:
		return "request error"
	case KindParse:
		return "parse error"
	case KindTimeout:
		return "timeout error"
	case KindLimitExceeded:
		return "limit exceeded"
	case KindDataIntegrity:
		return "data integrity error"
	}

	return "unknown error"
}

// Error is the only error type returned from exported Client
// operations.
type Error struct {
	kind    ErrorKind
	message string
	err     error
}

func (e *Error) Kind() ErrorKind {
	if e == nil {
		return KindUnknown
	}

	return e.kind
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.err
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.message != "" && e.err != nil:
		return e.kind.String() + ": " + e.message + ": " + e.err.Error()
	case e.message != "":
		return e.kind.String() + ": " + e.message
	case e.err != nil:
		return e.kind.String() + ": " + e.err.Error()
	}

	return e.kind.String()
}

// NewError builds an Error of a given kind. It is exported for
// consumers which wrap a Client and want to stay within its error
// model.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{
		kind:    kind,
		message: message,
		err:     err,
	}
}

func newError(kind ErrorKind, message string, err error) *Error {
	return NewError(kind, message, err)
}

// KindOf extracts an ErrorKind from any error. It returns KindUnknown
// for errors which did not come from this package.
func KindOf(err error) ErrorKind {
	var e *Error

	if errors.As(err, &e) {
		return e.Kind()
	}

	return KindUnknown
}
