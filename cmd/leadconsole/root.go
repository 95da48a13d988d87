package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"leadconsole/internal/config"
)

type rootOptions struct {
	dataDir        string
	defaultCfgPath string
	envFile        string
	table          bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "leadconsole",
		Short: "Lead management console",
		Long: `leadconsole lists, searches, filters, creates and deletes leads held by a
remote Leads API.

Run "leadconsole serve" for the local console API used by the UI, or drive
the same operations from the command line:
  leadconsole auth signin --email me@example.com --password ...
  leadconsole leads list --page 2 --size 50
  leadconsole leads filter --status new --score-min 40`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(opts.envFile); err != nil {
				return err
			}
			if opts.dataDir == "" {
				opts.dataDir = config.DataDir()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default $"+config.EnvDataDir+" or .)")
	root.PersistentFlags().StringVar(&opts.defaultCfgPath, "config", filepath.Join("config", "config.yml"), "default config copied into the data dir on first run")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCmd(opts),
		newLeadsCmd(opts),
		newAuthCmd(opts),
		newConfigCmd(opts),
	)
	return root
}
