package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyrouteai/skyroute/internal/warehouse"
)

var importCmd = &cobra.Command{
	Use:   "import [csv file]",
	Short: "Load flight-history CSV data into the local warehouse",
	Long: `Bulk-loads a flight-history CSV into the local SQLite warehouse used for
route analytics. Expected columns:

  flight_date,carrier_code,carrier_name,flight_number,origin,destination,dep_delay_minutes,arr_delay_minutes

Rows with malformed dates or airport codes are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := warehouse.Open(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("opening flight database: %w", err)
		}
		defer store.Close()

		n, err := store.ImportCSV(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}

		fmt.Printf("Imported %d flights into %s\n", n, cfg.DBPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
