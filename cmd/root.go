package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "skyroute",
	Short: "Natural-language travel assistant for flight status and route analytics",
	Long: `SkyRoute answers travel questions in plain English. It routes each
question to either a live flight-status lookup ("status of AA123") or
the local flight-history warehouse ("most on-time airlines from SFO to
JFK"), and remembers context so follow-ups like "what about JFK to ORD"
just work.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".skyroute.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
