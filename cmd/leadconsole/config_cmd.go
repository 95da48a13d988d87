package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"leadconsole/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the console configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the user config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			abs, _ := filepath.Abs(path)
			return printJSON(os.Stdout, map[string]string{"path": abs})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Normalize and validate the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			normalized, vr := config.NormalizeAndValidate(cfg)
			if err := printJSON(os.Stdout, map[string]any{"config": normalized, "validation": vr}); err != nil {
				return err
			}
			if !vr.OK() {
				return config.Validate(cfg)
			}
			return nil
		},
	})
	return cmd
}
