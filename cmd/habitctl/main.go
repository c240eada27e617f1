package main

import (
	"fmt"
	"os"

	"github.com/habitkit/habit-api/cmd/habitctl/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "habitctl",
		Short: "Operations tool for the Habit API",
		Long:  "CLI tool for streak recomputation, retention purges, and runtime settings",
	}

	rootCmd.AddCommand(commands.NewRecomputeCmd())
	rootCmd.AddCommand(commands.NewPurgeCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
