package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skyrouteai/skyroute/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize skyroute configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure skyroute and generates a .skyroute.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
