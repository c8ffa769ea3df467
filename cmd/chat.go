package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skyrouteai/skyroute/internal/present"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive travel-question session",
	Long: `Opens a REPL that remembers context between questions, so a turn like
"what about JFK to ORD" refines the previous query. Type "reset" to
forget the conversation and "exit" to leave.`,
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

		rtr := b.newRouter()

		fmt.Println("✈️  SkyRoute — ask about flight status or route analytics.")
		fmt.Println("   Try: \"status of AA123\" or \"most on-time airlines from SFO to JFK\"")
		fmt.Println("   Commands: reset, exit")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("you> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			switch strings.ToLower(line) {
			case "exit", "quit":
				fmt.Println("Safe travels!")
				return nil
			case "reset":
				rtr.Memory().Reset()
				fmt.Println("Conversation cleared.")
				continue
			}

			resp := rtr.Handle(cmd.Context(), line)
			fmt.Println(present.Text(resp))
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
