// Package exchange trades an authorization code for a token record at the
// provider's token endpoint.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/go-login-client/display"
	"github.com/jrsteele09/go-login-client/oauth2"
	"github.com/jrsteele09/go-login-client/oauthmodel"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

// DefaultTimeout bounds a single exchange when no client is supplied.
const DefaultTimeout = 30 * time.Second

const maxResponseSize = 1 << 20

// Exchanger performs authorization code exchanges. It keeps no state between
// calls and is safe for concurrent use.
type Exchanger struct {
	httpClient *http.Client
	authStyle  xoauth2.AuthStyle
}

type Option func(*Exchanger)

// WithHTTPClient replaces the HTTP client used for the token request.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Exchanger) {
		if c != nil {
			e.httpClient = c
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(e *Exchanger) {
		if d > 0 {
			e.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithAuthStyle selects how client credentials are sent. The default puts
// client_id and client_secret in the form body.
func WithAuthStyle(style xoauth2.AuthStyle) Option {
	return func(e *Exchanger) {
		e.authStyle = style
	}
}

func New(opts ...Option) *Exchanger {
	e := &Exchanger{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		authStyle:  xoauth2.AuthStyleInParams,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Exchange sends one token request and returns the full token record.
// Failures wrap ErrTransport, ErrMalformedResponse or ErrRejected. The body is
// read as JSON whatever its Content-Type; a response missing any of
// access_token, expires_in or refresh_token is ErrMalformedResponse.
func (e *Exchanger) Exchange(ctx context.Context, req oauthmodel.TokenRequest) (*oauth2.TokenResponse, error) {
	httpReq, err := e.newTokenRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejected(resp.StatusCode, body)
	}

	var wire tokenWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if wire.Error != "" && len(wire.AccessToken) == 0 {
		return nil, &RejectedError{StatusCode: resp.StatusCode, ErrorCode: wire.Error, ErrorDescription: wire.ErrorDescription}
	}
	return wire.record()
}

// newTokenRequest builds the form POST. Every parameter is sent as given,
// empty values included.
func (e *Exchanger) newTokenRequest(ctx context.Context, req oauthmodel.TokenRequest) (*http.Request, error) {
	form := url.Values{}
	form.Set(oauth2.ParamCode, req.Code)
	form.Set("redirect_uri", req.RedirectURI)
	form.Set("grant_type", req.GrantType)
	if req.CodeVerifier != "" {
		form.Set("code_verifier", req.CodeVerifier)
	}
	if e.authStyle != xoauth2.AuthStyleInHeader {
		form.Set("client_id", req.ClientID)
		form.Set("client_secret", req.ClientSecret)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	if e.authStyle == xoauth2.AuthStyleInHeader {
		httpReq.SetBasicAuth(url.QueryEscape(req.ClientID), url.QueryEscape(req.ClientSecret))
	}
	return httpReq, nil
}

// TryExchange reports failure as absence: the cause is logged and (nil, false)
// is returned.
func (e *Exchanger) TryExchange(ctx context.Context, req oauthmodel.TokenRequest) (*oauth2.TokenResponse, bool) {
	tok, err := e.Exchange(ctx, req)
	if err != nil {
		log.Warn().Err(err).
			Str("cause", string(KindOf(err))).
			Str("endpoint", req.TokenEndpoint).
			Str("code", display.Redact(req.Code)).
			Msg("Token exchange failed")
		return nil, false
	}
	return tok, true
}

// Result is the completion of an asynchronous exchange.
type Result struct {
	Token *oauth2.TokenResponse
	Err   error
}

// ExchangeAsync runs Exchange on its own goroutine. The returned channel
// yields exactly one Result and is then closed.
func (e *Exchanger) ExchangeAsync(ctx context.Context, req oauthmodel.TokenRequest) <-chan Result {
	results := make(chan Result, 1)
	go func() {
		defer close(results)
		tok, err := e.Exchange(ctx, req)
		results <- Result{Token: tok, Err: err}
	}()
	return results
}

// tokenWire keeps each field's raw JSON so any scalar is accepted as text.
type tokenWire struct {
	AccessToken      json.RawMessage `json:"access_token"`
	ExpiresIn        json.RawMessage `json:"expires_in"`
	RefreshToken     json.RawMessage `json:"refresh_token"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

func (w tokenWire) record() (*oauth2.TokenResponse, error) {
	rec := &oauth2.TokenResponse{
		AccessToken:  rawString(w.AccessToken),
		ExpiresIn:    rawString(w.ExpiresIn),
		RefreshToken: rawString(w.RefreshToken),
	}

	var missing []string
	if rec.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if rec.ExpiresIn == "" {
		missing = append(missing, "expires_in")
	}
	if rec.RefreshToken == "" {
		missing = append(missing, "refresh_token")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}
	return rec, nil
}

// rawString returns a JSON string's value, or the literal text of any other
// value. null and absent fields are empty.
func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
