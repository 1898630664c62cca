package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/itemkeeper/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "itemkeeper",
		Short: "Items API and Shopping List API servers",
		Long: `itemkeeper runs two small HTTP services that keep their records in a flat JSON file:
the catalog (Items API) and the shopping list.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
