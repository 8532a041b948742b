package loginflow

import (
	"errors"

	"github.com/jrsteele09/go-login-client/oauth2"
)

var (
	ErrAccessDenied        = errors.New("user denied authorization")
	ErrAuthorizationFailed = errors.New("authorization failed")
	ErrMissingState        = errors.New("callback is missing the state parameter")
	ErrUnknownState        = errors.New("unknown or expired login attempt")
)

// SessionState is whether the client currently holds a token.
type SessionState int

const (
	LoggedOut SessionState = iota
	LoggedIn
)

func (s SessionState) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// OutcomeKind is the result of handling one navigation.
type OutcomeKind int

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeLoggedIn
	OutcomeDenied
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLoggedIn:
		return "logged in"
	case OutcomeDenied:
		return "denied"
	case OutcomeFailed:
		return "failed"
	}
	return "ignored"
}

// Outcome reports what a redirect did. Token is set for OutcomeLoggedIn only.
type Outcome struct {
	Kind  OutcomeKind
	Token *oauth2.TokenResponse
}

// Terminal reports whether the login attempt is over.
func (o Outcome) Terminal() bool {
	return o.Kind != OutcomeIgnored
}
