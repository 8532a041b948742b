package config

import "time"

const (
	clientIDVar        = "OAUTH_CLIENT_ID"
	clientSecretVar    = "OAUTH_CLIENT_SECRET"
	redirectURIVar     = "OAUTH_REDIRECT_URI"
	authURLVar         = "OAUTH_AUTH_URL"
	tokenURLVar        = "OAUTH_TOKEN_URL"
	issuerVar          = "OAUTH_ISSUER"
	scopesVar          = "OAUTH_SCOPES"
	grantTypeVar       = "OAUTH_GRANT_TYPE"
	displayVar         = "OAUTH_DISPLAY"
	exchangeTimeoutVar = "OAUTH_EXCHANGE_TIMEOUT"
	attemptTimeoutVar  = "OAUTH_ATTEMPT_TIMEOUT"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetAuthURL() string
	GetTokenURL() string
	GetIssuer() string
	GetScopes() []string
	GetGrantType() string
	GetDisplay() string
	GetExchangeTimeout() time.Duration
	GetAuthAttemptTimeout() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv(clientIDVar, "")
}

func (OAuth) GetClientSecret() string {
	return GetEnv(clientSecretVar, "")
}

// GetRedirectURI is the callback the provider redirects to. The loopback
// listener binds to its host and path.
func (OAuth) GetRedirectURI() string {
	return GetEnv(redirectURIVar, "http://localhost:8085/callback")
}

func (OAuth) GetAuthURL() string {
	return GetEnv(authURLVar, "https://www.facebook.com/dialog/oauth")
}

func (OAuth) GetTokenURL() string {
	return GetEnv(tokenURLVar, "https://graph.facebook.com/oauth/access_token")
}

// GetIssuer enables OIDC discovery of the endpoints when set.
func (OAuth) GetIssuer() string {
	return GetEnv(issuerVar, "")
}

func (OAuth) GetScopes() []string {
	return GetEnvList(scopesVar, []string{"public_profile"})
}

func (OAuth) GetGrantType() string {
	return GetEnv(grantTypeVar, "authorization_code")
}

func (OAuth) GetDisplay() string {
	return GetEnv(displayVar, "popup")
}

func (OAuth) GetExchangeTimeout() time.Duration {
	return GetEnvDuration(exchangeTimeoutVar, 30*time.Second)
}

func (OAuth) GetAuthAttemptTimeout() time.Duration {
	return GetEnvDuration(attemptTimeoutVar, 15*time.Minute)
}
