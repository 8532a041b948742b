package redirect

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Interceptor watches navigations for the redirect URI and hands out at most
// one authorization response per armed attempt. A new Interceptor is armed.
type Interceptor struct {
	target *url.URL

	mu    sync.Mutex
	armed bool
}

// NewInterceptor only accepts navigations to redirectURI (scheme, host and
// path). An empty redirectURI accepts any URL.
func NewInterceptor(redirectURI string) (*Interceptor, error) {
	i := &Interceptor{armed: true}
	if redirectURI == "" {
		return i, nil
	}
	target, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("parse redirect uri: %w", err)
	}
	i.target = target
	return i, nil
}

// Arm re-enables the interceptor for a new login attempt.
func (i *Interceptor) Arm() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.armed = true
}

// Armed reports whether the next authorization response will be handed out.
func (i *Interceptor) Armed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.armed
}

// Intercept returns the authorization response carried by rawURL, or
// KindIgnored for unrelated navigations and for responses after the first.
func (i *Interceptor) Intercept(rawURL string) (Callback, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Callback{}, fmt.Errorf("parse redirect url: %w", err)
	}
	if !i.matches(u) {
		return Callback{Kind: KindIgnored}, nil
	}

	cb := FromQuery(u.Query())
	if cb.Kind == KindIgnored {
		return cb, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.armed {
		return Callback{Kind: KindIgnored}, nil
	}
	i.armed = false
	return cb, nil
}

func (i *Interceptor) matches(u *url.URL) bool {
	if i.target == nil {
		return true
	}
	return strings.EqualFold(u.Scheme, i.target.Scheme) &&
		strings.EqualFold(u.Host, i.target.Host) &&
		strings.TrimSuffix(u.Path, "/") == strings.TrimSuffix(i.target.Path, "/")
}
