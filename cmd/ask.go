package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skyrouteai/skyroute/internal/present"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single travel question",
	Long: `Answers one question and exits. There is no conversation memory across
invocations; use "skyroute chat" for follow-ups.`,
	Args: cobra.MinimumNArgs(1),
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

		question := strings.Join(args, " ")
		resp := b.newRouter().Handle(cmd.Context(), question)

		if askJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		fmt.Println(present.Text(resp))
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the structured response as JSON")
	rootCmd.AddCommand(askCmd)
}
