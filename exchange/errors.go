package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrTransport covers DNS failures, refused connections, timeouts and cancellation.
	ErrTransport = errors.New("token endpoint unreachable")
	// ErrMalformedResponse covers unparsable bodies and responses missing a required field.
	ErrMalformedResponse = errors.New("malformed token response")
	// ErrRejected is returned when the endpoint answers with an OAuth error,
	// e.g. invalid_grant for a code that was already used.
	ErrRejected = errors.New("token request rejected")
)

// FailureKind names the class of an exchange failure.
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureTransport FailureKind = "transport"
	FailureMalformed FailureKind = "malformed"
	FailureRejected  FailureKind = "rejected"
	FailureUnknown   FailureKind = "unknown"
)

// KindOf classifies an error returned by Exchange.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrTransport):
		return FailureTransport
	case errors.Is(err, ErrMalformedResponse):
		return FailureMalformed
	case errors.Is(err, ErrRejected):
		return FailureRejected
	}
	return FailureUnknown
}

// RejectedError carries the token endpoint's OAuth error response.
type RejectedError struct {
	StatusCode       int
	ErrorCode        string
	ErrorDescription string
}

func (e *RejectedError) Error() string {
	msg := fmt.Sprintf("%s: status %d", ErrRejected.Error(), e.StatusCode)
	if e.ErrorCode != "" {
		msg += " " + e.ErrorCode
	}
	if e.ErrorDescription != "" {
		msg += ": " + e.ErrorDescription
	}
	return msg
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// rejected reads the OAuth error body of a non-2xx response. A body that is
// not an OAuth error still yields the status code.
func rejected(status int, body []byte) *RejectedError {
	var oauthErr struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &oauthErr)
	return &RejectedError{
		StatusCode:       status,
		ErrorCode:        oauthErr.Error,
		ErrorDescription: oauthErr.ErrorDescription,
	}
}
