package cmd

import (
	"fmt"

	"github.com/jrsteele09/go-login-client/display"
	"github.com/jrsteele09/go-login-client/redirect"
	"github.com/spf13/cobra"
)

func newParseRedirectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-redirect URL",
		Short: "Show what a redirect URL would be treated as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := redirect.Parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Kind: %s\n", cb.Kind)
			switch cb.Kind {
			case redirect.KindCode:
				fmt.Fprintf(out, "Code: %s\n", display.Redact(cb.Code))
			case redirect.KindDenied, redirect.KindError:
				fmt.Fprintf(out, "Error: %s\n", cb.Error)
				if cb.ErrorDescription != "" {
					fmt.Fprintf(out, "Description: %s\n", cb.ErrorDescription)
				}
			}
			if cb.State != "" {
				fmt.Fprintf(out, "State: %s\n", cb.State)
			}
			return nil
		},
	}
}
