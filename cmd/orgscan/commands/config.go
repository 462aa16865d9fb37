package commands

import (
	"fmt"

	"github.com/sonumahanty/Swiss-Re/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration files",
	}

	var output string
	defaultsCmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.MinVersion = Version

			if output != "" {
				if err := config.WriteFile(output, &cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", output)
				return nil
			}

			data, err := config.Marshal(&cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	defaultsCmd.Flags().StringVar(&output, "output", "", "Write the configuration to this file instead of stdout")

	validateCmd := &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Check that a configuration file can be used by this orgscan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := cfg.CheckMinVersion(Version); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration %s is valid\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(defaultsCmd)
	cmd.AddCommand(validateCmd)
	return cmd
}
