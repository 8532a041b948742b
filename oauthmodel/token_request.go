package oauthmodel

// TokenRequest holds parameters for an authorization code exchange.
// Values are sent as given; an empty Code is not rejected client-side.
type TokenRequest struct {
	// TokenEndpoint is the provider's token URL.
	// Example: "https://graph.facebook.com/oauth/access_token"
	TokenEndpoint string

	// Code is the one-time authorization code taken from the redirect.
	// Usage: Exchanged once, a second exchange is expected to fail
	Code string

	// ClientID identifies the registered application.
	ClientID string

	// ClientSecret is the application's secret.
	// Security: Never log this value
	ClientSecret string

	// RedirectURI must equal the redirect_uri used on the authorization request.
	RedirectURI string

	// GrantType is normally "authorization_code". Left blank, the
	// authorization_code grant is sent.
	GrantType string

	// CodeVerifier is the PKCE verifier, sent only when set.
	CodeVerifier string
}

// NewTokenRequest builds a request from the six exchange inputs.
func NewTokenRequest(tokenEndpoint, code, clientID, clientSecret, redirectURI, grantType string) TokenRequest {
	return TokenRequest{
		TokenEndpoint: tokenEndpoint,
		Code:          code,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		RedirectURI:   redirectURI,
		GrantType:     grantType,
	}
}
