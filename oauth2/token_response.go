package oauth2

// TokenResponse is the token record read from the token endpoint.
// All three fields are required; a response missing any of them is rejected
// as a whole rather than returned partially.
type TokenResponse struct {
	// AccessToken authenticates subsequent API calls.
	// Usage: Authorization header "Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// ExpiresIn is the access token lifetime in seconds, kept as its decimal string.
	// Providers send it either as a JSON number (3600) or a string ("3600").
	ExpiresIn string `json:"expires_in"`

	// RefreshToken is the opaque token for obtaining new access tokens.
	// This client never uses it; it is displayed only.
	RefreshToken string `json:"refresh_token"`
}

// Complete reports whether every field is present.
func (t *TokenResponse) Complete() bool {
	return t != nil && t.AccessToken != "" && t.ExpiresIn != "" && t.RefreshToken != ""
}
