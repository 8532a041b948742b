package authflowrepo

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
// Attempts expire after the configured TTL.
type InMemoryRepo struct {
	states *ttlcache.Cache[string, AuthFlowState]
}

// NewInMemoryRepo creates a new in-memory auth flow state repository
func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		states: ttlcache.New(
			ttlcache.WithTTL[string, AuthFlowState](ttl),
			ttlcache.WithDisableTouchOnHit[string, AuthFlowState](),
		),
	}
}

// Start runs the expired entry cleanup until Stop is called. Expired attempts
// are never returned even when cleanup is not running.
func (r *InMemoryRepo) Start() {
	go r.states.Start()
}

// Stop ends the cleanup started by Start. It must not be called without Start.
func (r *InMemoryRepo) Stop() {
	r.states.Stop()
}

// Upsert stores or updates an auth flow state
func (r *InMemoryRepo) Upsert(state string, authState *AuthFlowState) error {
	if state == "" {
		return ErrEmptyState
	}
	if authState == nil {
		return ErrNilAuthState
	}

	// Stored by value to prevent external modifications
	r.states.Set(state, *authState, ttlcache.DefaultTTL)
	return nil
}

// Get retrieves an auth flow state by state parameter
func (r *InMemoryRepo) Get(state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, ErrEmptyState
	}

	item := r.states.Get(state)
	if item == nil {
		return nil, ErrStateNotFound
	}
	authState := item.Value()
	return &authState, nil
}

// Take retrieves and removes an auth flow state in one step
func (r *InMemoryRepo) Take(state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, ErrEmptyState
	}

	item, ok := r.states.GetAndDelete(state)
	if !ok || item == nil {
		return nil, ErrStateNotFound
	}
	authState := item.Value()
	return &authState, nil
}

// Delete removes an auth flow state
func (r *InMemoryRepo) Delete(state string) error {
	if state == "" {
		return ErrEmptyState
	}

	r.states.Delete(state)
	return nil
}
