// Package cmd holds the logindemo cobra commands.
package cmd

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-login-client/internal/config"
	"github.com/jrsteele09/go-login-client/internal/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile  string
	noBanner bool
	cfg      config.Config
}

// NewRootCommand builds the command tree. Each call returns a fresh tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "logindemo",
		Short:         "Run an OAuth 2.0 authorization code login from the terminal",
		Long:          `logindemo opens an authorization code login, catches the redirect on a loopback listener, exchanges the code and prints the token.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(opts.envFile); err != nil {
				return fmt.Errorf("load %s: %w", opts.envFile, err)
			}
			opts.cfg = config.New()
			logging.Setup(opts.cfg.GetLogLevel(), opts.cfg.GetEnv())
			if !opts.noBanner {
				displayAppname(cmd.OutOrStdout(), opts.cfg.GetAppName())
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&opts.noBanner, "no-banner", false, "do not print the application banner")

	rootCmd.AddCommand(
		newLoginCommand(opts),
		newExchangeCommand(opts),
		newRetryCommand(opts),
		newParseRedirectCommand(),
	)
	return rootCmd
}

func displayAppname(out io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(out, myFigure.String())
}
