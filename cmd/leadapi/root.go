package main

import (
	"github.com/spf13/cobra"

	"github.com/thermocore/leadapi/internal/config"
)

type rootOptions struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "leadapi",
		Short: "Contact form API for the Thermocore website",
		Long: `leadapi receives contact form submissions, rate limits them per client,
validates and sanitizes the fields and emails the sales team and the
submitter.

Configuration is read from the environment and, when present, a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files loaded before parsing the environment")

	cmd.AddCommand(
		newServeCmd(opts),
		newMailTestCmd(opts),
		newMigrateCmd(opts),
	)
	return cmd
}

func (o *rootOptions) config() (config.Config, error) {
	return config.Load(o.envFiles...)
}
