package cmd

import (
	"fmt"

	"github.com/jrsteele09/go-login-client/display"
	"github.com/spf13/cobra"
)

func newExchangeCommand(opts *rootOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an authorization code obtained elsewhere",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, release, err := newFlow(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer release()

			outcome, err := flow.ExchangeCode(cmd.Context(), code)
			if err != nil {
				return outcomeError(outcome, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), display.Render(outcome.Token))
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "authorization code to exchange")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
