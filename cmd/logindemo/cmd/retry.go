package cmd

import (
	"errors"
	"fmt"

	"github.com/jrsteele09/go-login-client/codestore"
	"github.com/jrsteele09/go-login-client/display"
	"github.com/spf13/cobra"
)

func newRetryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Exchange the last stored authorization code again",
		Long:  `Codes are single use, so the provider normally rejects a retry once the first exchange succeeded. The stored code only survives between runs when CODE_STORE_PATH and CODE_STORE_PASSPHRASE are set.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, release, err := newFlow(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer release()

			outcome, err := flow.RetryLastCode(cmd.Context())
			if errors.Is(err, codestore.ErrNoCode) {
				return fmt.Errorf("no stored code to retry: %w", err)
			}
			if err != nil {
				return outcomeError(outcome, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), display.Render(outcome.Token))
			return nil
		},
	}
}
