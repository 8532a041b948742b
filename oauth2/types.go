package oauth2

// ResponseType represents the OAuth 2.0 response type requested at the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType asks for an authorization code on the redirect.
	// Example: /dialog/oauth?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"

	// TokenResponseType asks for the token directly on the redirect (implicit flow).
	// Not exchanged by this client; kept so it can be recognised and refused.
	TokenResponseType ResponseType = "token"
)

// GrantType represents the OAuth 2.0 grant type sent to the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: code, client_id, client_secret, redirect_uri
	AuthorizationCodeGrant GrantType = "authorization_code"

	// RefreshTokenGrant exchanges a refresh token for new tokens.
	RefreshTokenGrant GrantType = "refresh_token"
)

// Callback query parameter names on the redirect URI.
const (
	ParamCode             = "code"
	ParamState            = "state"
	ParamError            = "error"
	ParamErrorDescription = "error_description"
)

// ErrorAccessDenied is the error value a provider sends when the user refuses consent.
const ErrorAccessDenied = "access_denied"
