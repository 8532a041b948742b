// Package discovery resolves the provider's authorization and token endpoints,
// either from static configuration or from an OpenID Connect issuer.
package discovery

import (
	"context"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	liberrors "github.com/jrsteele09/go-login-client/internal/errors"
	"github.com/rs/zerolog/log"
)

// Endpoint is the pair of provider URLs used by a login.
type Endpoint struct {
	AuthURL  string
	TokenURL string
}

// Resolve returns the issuer's discovered endpoints when issuer is set,
// otherwise the static endpoint. A nil httpClient uses the default client.
func Resolve(ctx context.Context, issuer string, static Endpoint, httpClient *http.Client) (Endpoint, error) {
	if strings.TrimSpace(issuer) == "" {
		if static.AuthURL == "" || static.TokenURL == "" {
			return Endpoint{}, liberrors.ErrMissingEndpoint
		}
		return static, nil
	}

	if httpClient != nil {
		ctx = oidc.ClientContext(ctx, httpClient)
	}
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return Endpoint{}, liberrors.Wrapf(err, "discover issuer %s", issuer)
	}

	ep := provider.Endpoint()
	log.Debug().Str("issuer", issuer).Str("token_url", ep.TokenURL).Msg("Discovered OIDC endpoints")
	return Endpoint{AuthURL: ep.AuthURL, TokenURL: ep.TokenURL}, nil
}
