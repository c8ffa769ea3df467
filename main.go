package main

import (
	"os"

	"github.com/skyrouteai/skyroute/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
