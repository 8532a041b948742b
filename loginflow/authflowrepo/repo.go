package authflowrepo

import (
	"errors"
	"time"
)

var (
	ErrEmptyState    = errors.New("state cannot be empty")
	ErrNilAuthState  = errors.New("authState cannot be nil")
	ErrStateNotFound = errors.New("state not found")
)

// AuthFlowState is what a login attempt remembers between building the
// authorization URL and receiving the redirect.
type AuthFlowState struct {
	CodeVerifier string
	RedirectURI  string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Get(state string) (*AuthFlowState, error)
	// Take returns the attempt and removes it, so a state is redeemed once.
	Take(state string) (*AuthFlowState, error)
	Delete(state string) error
}
