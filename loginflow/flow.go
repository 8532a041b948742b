// Package loginflow drives an authorization code login: it builds the login
// URL, handles the redirect back, exchanges the code and tracks whether the
// client is logged in.
package loginflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-login-client/codestore"
	"github.com/jrsteele09/go-login-client/display"
	"github.com/jrsteele09/go-login-client/loginflow/authflowrepo"
	"github.com/jrsteele09/go-login-client/oauth2"
	"github.com/jrsteele09/go-login-client/oauthmodel"
	"github.com/jrsteele09/go-login-client/redirect"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

// TokenExchanger trades an authorization code for a token record.
type TokenExchanger interface {
	Exchange(ctx context.Context, req oauthmodel.TokenRequest) (*oauth2.TokenResponse, error)
}

// Attempt is a started login: the URL to open and the state it expects back.
type Attempt struct {
	State string
	URL   string
}

type Flow struct {
	settings    Settings
	exchanger   TokenExchanger
	pending     authflowrepo.Repo
	codes       codestore.Store
	interceptor *redirect.Interceptor

	mu      sync.RWMutex
	session SessionState
	token   *oauth2.TokenResponse
}

func New(settings Settings, exchanger TokenExchanger, pending authflowrepo.Repo, codes codestore.Store) (*Flow, error) {
	if exchanger == nil || pending == nil || codes == nil {
		return nil, errors.New("[loginflow New] exchanger, pending repo and code store are required")
	}
	interceptor, err := redirect.NewInterceptor(settings.RedirectURI)
	if err != nil {
		return nil, fmt.Errorf("[loginflow New] %w", err)
	}
	return &Flow{
		settings:    settings,
		exchanger:   exchanger,
		pending:     pending,
		codes:       codes,
		interceptor: interceptor,
	}, nil
}

// Begin starts a login attempt and returns the authorization URL to open.
func (f *Flow) Begin() (Attempt, error) {
	state := uuid.NewString()

	var verifier string
	if f.settings.UsePKCE {
		verifier = xoauth2.GenerateVerifier()
	}

	params := oauthmodel.AuthorizationParameters{
		AuthURL:      f.settings.AuthURL,
		ClientID:     f.settings.ClientID,
		RedirectURI:  f.settings.RedirectURI,
		ResponseType: oauth2.CodeResponseType,
		Scopes:       f.settings.Scopes,
		State:        state,
		Display:      f.settings.Display,
		CodeVerifier: verifier,
	}
	authURL, err := params.URL()
	if err != nil {
		return Attempt{}, fmt.Errorf("build authorization url: %w", err)
	}

	if err := f.pending.Upsert(state, &authflowrepo.AuthFlowState{
		CodeVerifier: verifier,
		RedirectURI:  f.settings.RedirectURI,
		CreatedAt:    time.Now(),
	}); err != nil {
		return Attempt{}, fmt.Errorf("store login attempt: %w", err)
	}
	f.interceptor.Arm()

	log.Info().Str("state", state).Bool("pkce", verifier != "").Msg("Login attempt started")
	return Attempt{State: state, URL: authURL}, nil
}

// HandleRedirect inspects one navigation. Unrelated URLs give OutcomeIgnored
// and no error; callbacks with a bad state give OutcomeIgnored and an error,
// leaving the attempt open. A denial never reaches the token endpoint.
func (f *Flow) HandleRedirect(ctx context.Context, rawURL string) (Outcome, error) {
	cb, err := f.interceptor.Intercept(rawURL)
	if err != nil {
		return Outcome{Kind: OutcomeIgnored}, err
	}

	if cb.Kind == redirect.KindIgnored {
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	// denials and errors are bound to the pending state like codes
	verifier, err := f.redeemState(cb.State)
	if err != nil {
		f.interceptor.Arm()
		log.Warn().Err(err).Str("kind", cb.Kind.String()).Msg("Callback rejected")
		return Outcome{Kind: OutcomeIgnored}, err
	}

	switch cb.Kind {
	case redirect.KindDenied:
		log.Info().Str("state", cb.State).Msg("Login denied by user")
		return Outcome{Kind: OutcomeDenied}, ErrAccessDenied
	case redirect.KindError:
		log.Warn().Str("error", cb.Error).Str("description", cb.ErrorDescription).Msg("Provider returned an error")
		return Outcome{Kind: OutcomeFailed}, fmt.Errorf("%w: %s", ErrAuthorizationFailed, cb.Error)
	}

	return f.exchange(ctx, cb.Code, verifier)
}

// ExchangeCode exchanges a code obtained outside the redirect listener.
func (f *Flow) ExchangeCode(ctx context.Context, code string) (Outcome, error) {
	return f.exchange(ctx, code, "")
}

// RetryLastCode exchanges the last stored code again. Codes are single use,
// so a rejection here is expected once the first exchange went through.
func (f *Flow) RetryLastCode(ctx context.Context) (Outcome, error) {
	code, err := f.codes.Load()
	if err != nil {
		return Outcome{Kind: OutcomeFailed}, err
	}
	return f.exchange(ctx, code, "")
}

// Logout forgets the token and the stored code.
func (f *Flow) Logout() error {
	f.mu.Lock()
	f.session = LoggedOut
	f.token = nil
	f.mu.Unlock()

	if err := f.codes.Clear(); err != nil {
		return fmt.Errorf("clear stored code: %w", err)
	}
	log.Info().Msg("Logged out")
	return nil
}

func (f *Flow) State() SessionState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.session
}

// Token returns a copy of the current token, or nil when logged out.
func (f *Flow) Token() *oauth2.TokenResponse {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.token == nil {
		return nil
	}
	tok := *f.token
	return &tok
}

func (f *Flow) exchange(ctx context.Context, code, verifier string) (Outcome, error) {
	if err := f.codes.Save(code); err != nil {
		log.Warn().Err(err).Msg("Failed to store authorization code for retry")
	}

	req := oauthmodel.NewTokenRequest(f.settings.TokenURL, code, f.settings.ClientID, f.settings.ClientSecret, f.settings.RedirectURI, f.settings.GrantType)
	req.CodeVerifier = verifier

	log.Debug().Str("code", display.Redact(code)).Str("endpoint", req.TokenEndpoint).Msg("Exchanging authorization code")
	tok, err := f.exchanger.Exchange(ctx, req)
	if err != nil {
		return Outcome{Kind: OutcomeFailed}, err
	}

	f.mu.Lock()
	f.session = LoggedIn
	f.token = tok
	f.mu.Unlock()

	log.Info().Str("access_token", display.Redact(tok.AccessToken)).Str("expires_in", tok.ExpiresIn).Msg("Logged in")
	tokCopy := *tok
	return Outcome{Kind: OutcomeLoggedIn, Token: &tokCopy}, nil
}

func (f *Flow) redeemState(state string) (string, error) {
	if state == "" {
		if f.settings.RequireState {
			return "", ErrMissingState
		}
		return "", nil
	}
	attempt, err := f.pending.Take(state)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownState, err)
	}
	return attempt.CodeVerifier, nil
}
