package cmd

import (
	"context"

	"github.com/jrsteele09/go-login-client/codestore"
	"github.com/jrsteele09/go-login-client/discovery"
	"github.com/jrsteele09/go-login-client/exchange"
	"github.com/jrsteele09/go-login-client/internal/config"
	liberrors "github.com/jrsteele09/go-login-client/internal/errors"
	"github.com/jrsteele09/go-login-client/loginflow"
	"github.com/jrsteele09/go-login-client/loginflow/authflowrepo"
	"github.com/jrsteele09/go-login-client/oauthmodel"
	"github.com/rs/zerolog/log"
)

// newFlow wires a Flow from configuration. The returned func releases the
// pending attempt cache and must always be called.
func newFlow(ctx context.Context, cfg config.Config) (*loginflow.Flow, func(), error) {
	if cfg.GetClientID() == "" {
		return nil, nil, oauthmodel.ErrMissingClientID
	}

	ep, err := discovery.Resolve(ctx, cfg.GetIssuer(), discovery.Endpoint{
		AuthURL:  cfg.GetAuthURL(),
		TokenURL: cfg.GetTokenURL(),
	}, nil)
	if err != nil {
		return nil, nil, liberrors.Wrapf(err, "resolve endpoints")
	}

	codes, err := newCodeStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	pending := authflowrepo.NewInMemoryRepo(cfg.GetAuthAttemptTimeout())
	pending.Start()

	flow, err := loginflow.New(
		loginflow.SettingsFromConfig(cfg, ep),
		exchange.New(exchange.WithTimeout(cfg.GetExchangeTimeout())),
		pending,
		codes,
	)
	if err != nil {
		pending.Stop()
		return nil, nil, liberrors.Wrapf(err, "create login flow")
	}
	return flow, pending.Stop, nil
}

// newCodeStore persists the last code only when both a path and a passphrase
// are configured.
func newCodeStore(cfg config.Config) (codestore.Store, error) {
	path, passphrase := cfg.GetCodeStorePath(), cfg.GetCodeStorePassphrase()
	if path == "" || passphrase == "" {
		log.Debug().Msg("Using in-memory code store")
		return codestore.NewMemoryStore(), nil
	}
	store, err := codestore.NewEncryptedFileStore(path, passphrase)
	if err != nil {
		return nil, liberrors.Wrapf(err, "open code store %s", path)
	}
	return store, nil
}

// outcomeError turns a failed outcome into a message that names the failure kind.
func outcomeError(outcome loginflow.Outcome, err error) error {
	if err == nil {
		return nil
	}
	if kind := exchange.KindOf(err); kind != exchange.FailureNone && kind != exchange.FailureUnknown {
		return liberrors.Wrapf(err, "%s (%s failure)", outcome.Kind, kind)
	}
	return liberrors.Wrapf(err, "%s", outcome.Kind)
}
