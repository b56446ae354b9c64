package main

import (
	"os"

	"github.com/spf13/cobra"

	"klippa/internal/interfaces/cli/migrate"
	"klippa/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "klippa",
		Short: "Klippa - embeddable coupon claim platform",
		Long:  `Klippa serves the partner-embeddable coupon widget API, with built-in migration and seeding tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
