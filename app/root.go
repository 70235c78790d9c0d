// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/growfastwithus/growfast/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Directory containing main.toml")
}

var (
	configPath string // Path to the configuration directory

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "growfast",
		Short: "GrowFastWithUs marketing site and content backend",
		Long: `GrowFastWithUs serves the marketing site of the automation agency,
takes contact requests and offers a JSON admin API for templates,
site settings, reviews, email settings and media.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// readConfig loads the configuration for commands that need it.
func readConfig(_ *cobra.Command, _ []string) error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err //nolint:wrapcheck
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
