package marvel

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed fetch.
type ErrorKind string

const (
	ErrKindInvalidURL      ErrorKind = "invalid_url"
	ErrKindExecution       ErrorKind = "execution_error"
	ErrKindInvalidResponse ErrorKind = "invalid_response"
	ErrKindInvalidDecode   ErrorKind = "invalid_decode"
	ErrKindInvalidData     ErrorKind = "invalid_data"
	ErrKindConnection      ErrorKind = "error_connection"
	ErrKindUnknown         ErrorKind = "unknown_error"
)

// Sentinels for errors.Is checks against a *FetchError.
var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrExecution       = errors.New("request failed")
	ErrInvalidResponse = errors.New("invalid response")
	ErrInvalidDecode   = errors.New("invalid response body")
	ErrInvalidData     = errors.New("empty response body")
	ErrConnection      = errors.New("api rejected request")
	ErrUnknown         = errors.New("unknown error")
)

var kindSentinels = map[ErrorKind]error{
	ErrKindInvalidURL:      ErrInvalidURL,
	ErrKindExecution:       ErrExecution,
	ErrKindInvalidResponse: ErrInvalidResponse,
	ErrKindInvalidDecode:   ErrInvalidDecode,
	ErrKindInvalidData:     ErrInvalidData,
	ErrKindConnection:      ErrConnection,
	ErrKindUnknown:         ErrUnknown,
}

// FetchError is returned by FetchCharacters for every failure.
type FetchError struct {
	Kind    ErrorKind
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-provided message for ErrKindConnection
	Err     error
}

func (e *FetchError) Error() string {
	base := kindSentinels[e.Kind]
	if base == nil {
		base = ErrUnknown
	}
	msg := base.Error()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *FetchError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func newFetchError(kind ErrorKind, status int, err error) *FetchError {
	return &FetchError{Kind: kind, Status: status, Err: err}
}
