// Package display renders token records for a person to read and redacts
// secrets before they reach a log line.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-login-client/oauth2"
)

const redactedPrefixLen = 4

// Redact keeps a short prefix of a secret so log lines can be correlated
// without exposing the value.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= redactedPrefixLen {
		return "****"
	}
	return secret[:redactedPrefixLen] + "****"
}

// Render formats a token record one field per line. When the access token is
// a JWT its subject, issuer and expiry are appended; the claims are not verified.
func Render(tok *oauth2.TokenResponse) string {
	if tok == nil {
		return "No token"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Access Token: %s\n", tok.AccessToken)
	fmt.Fprintf(&b, "Expires: %s\n", tok.ExpiresIn)
	fmt.Fprintf(&b, "Refresh Token: %s\n", tok.RefreshToken)

	if claims, ok := accessTokenClaims(tok.AccessToken); ok {
		b.WriteString(renderClaims(claims))
	}
	return b.String()
}

func accessTokenClaims(accessToken string) (jwt.MapClaims, bool) {
	if strings.Count(accessToken, ".") != 2 {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func renderClaims(claims jwt.MapClaims) string {
	var b strings.Builder
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		fmt.Fprintf(&b, "Subject: %s\n", sub)
	}
	if iss, err := claims.GetIssuer(); err == nil && iss != "" {
		fmt.Fprintf(&b, "Issuer: %s\n", iss)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Fprintf(&b, "Expires At: %s\n", exp.UTC().Format(time.RFC3339))
	}
	return b.String()
}
