package oauthmodel

import (
	"net/url"
	"strings"

	"github.com/jrsteele09/go-login-client/oauth2"
	xoauth2 "golang.org/x/oauth2"
)

// AuthorizationParameters holds the query sent to the provider's authorization endpoint.
type AuthorizationParameters struct {
	// AuthURL is the provider's authorization endpoint.
	// Example: "https://www.facebook.com/dialog/oauth"
	AuthURL string

	// ClientID identifies the application requesting authorization.
	ClientID string

	// RedirectURI is where the provider sends the user back with ?code= or ?error=.
	// Must be absolute and match what is registered with the provider.
	RedirectURI string

	// ResponseType defaults to "code". Only the code flow is supported.
	ResponseType oauth2.ResponseType

	// Scopes are joined with commas, which social-network providers accept.
	// Example: []string{"publish_actions", "user_photos"}
	Scopes []string

	// State is echoed back on the redirect and checked when the code arrives.
	State string

	// Display is a provider hint for the login page layout.
	// Example: "popup"
	Display string

	// CodeVerifier, when set, adds an S256 code_challenge derived from it.
	CodeVerifier string
}

// Validate checks the parameters needed to build a usable login URL
func (p *AuthorizationParameters) Validate() error {
	if strings.TrimSpace(p.AuthURL) == "" {
		return ErrMissingAuthURL
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return ErrMissingClientID
	}
	if !redirectURIValid(p.RedirectURI) {
		return ErrInvalidRedirectUri
	}
	if !responseTypeValid(p.ResponseType) {
		return ErrInvalidResponseType
	}
	return nil
}

// URL validates the parameters and renders the authorization URL.
func (p *AuthorizationParameters) URL() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	cfg := xoauth2.Config{
		ClientID:    p.ClientID,
		RedirectURL: p.RedirectURI,
		Endpoint:    xoauth2.Endpoint{AuthURL: p.AuthURL},
	}

	var opts []xoauth2.AuthCodeOption
	if len(p.Scopes) > 0 {
		opts = append(opts, xoauth2.SetAuthURLParam("scope", strings.Join(p.Scopes, ",")))
	}
	if p.Display != "" {
		opts = append(opts, xoauth2.SetAuthURLParam("display", p.Display))
	}
	if p.CodeVerifier != "" {
		opts = append(opts, xoauth2.S256ChallengeOption(p.CodeVerifier))
	}
	return cfg.AuthCodeURL(p.State, opts...), nil
}

func responseTypeValid(responseType oauth2.ResponseType) bool {
	if strings.TrimSpace(string(responseType)) == "" {
		return true
	}
	return responseType == oauth2.CodeResponseType
}

func redirectURIValid(redirectURI string) bool {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
