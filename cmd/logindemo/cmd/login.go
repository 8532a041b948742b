package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/go-login-client/callback"
	"github.com/jrsteele09/go-login-client/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errLoginTimeout = errors.New("no callback received before the timeout")

func newLoginCommand(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a login and wait for the provider to redirect back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeout <= 0 {
				timeout = opts.cfg.GetAuthAttemptTimeout()
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			flow, release, err := newFlow(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer release()

			srv, err := callback.New(opts.cfg.GetRedirectURI(), flow, opts.cfg.GetEnv())
			if err != nil {
				return err
			}

			serveCtx, stopServing := context.WithCancel(ctx)
			served := make(chan error, 1)
			go func() { served <- srv.ListenAndServe(serveCtx) }()
			defer func() {
				stopServing()
				if err := <-served; err != nil {
					log.Warn().Err(err).Msg("Callback listener stopped with an error")
				}
			}()

			attempt, err := flow.Begin()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Open this URL in a browser to log in:\n\n  %s\n\n", attempt.URL)
			fmt.Fprintf(out, "Waiting for the redirect on %s ...\n", srv.Addr())

			select {
			case res := <-srv.Results():
				if res.Err != nil {
					return outcomeError(res.Outcome, res.Err)
				}
				fmt.Fprint(out, display.Render(res.Outcome.Token))
				return nil
			case err := <-served:
				// the deferred drain must not block on a listener that already returned
				served <- err
				if err != nil {
					return err
				}
				return errLoginTimeout
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return errLoginTimeout
				}
				return ctx.Err()
			}
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "how long to wait for the redirect (default OAUTH_ATTEMPT_TIMEOUT)")
	return cmd
}
