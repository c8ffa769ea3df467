package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyrouteai/skyroute/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing the ask,
flight_status, rank_airlines, and delays_by_day tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b, err := openBackends(cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		mcpserver.Version = Version

		// Stdout carries the protocol; status messages go to stderr.
		fmt.Fprintf(os.Stderr, "skyroute MCP server started on stdio (db=%s)\n", cfg.DBPath())

		srv := mcpserver.NewServer(b.newRouter(), b.status, b.store)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
