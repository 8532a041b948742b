package loginflow

import (
	"github.com/jrsteele09/go-login-client/discovery"
	"github.com/jrsteele09/go-login-client/internal/config"
)

// Settings is everything a Flow needs to know about the provider and client.
type Settings struct {
	AuthURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	GrantType    string
	Scopes       []string
	Display      string

	// UsePKCE adds an S256 challenge to every attempt.
	UsePKCE bool
	// RequireState refuses codes that arrive without a state parameter.
	RequireState bool
}

// SettingsFromConfig combines the configured client with resolved endpoints.
func SettingsFromConfig(cfg config.Config, ep discovery.Endpoint) Settings {
	return Settings{
		AuthURL:      ep.AuthURL,
		TokenURL:     ep.TokenURL,
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		RedirectURI:  cfg.GetRedirectURI(),
		GrantType:    cfg.GetGrantType(),
		Scopes:       cfg.GetScopes(),
		Display:      cfg.GetDisplay(),
		UsePKCE:      cfg.GetUsePKCE(),
		RequireState: cfg.GetRequireState(),
	}
}
