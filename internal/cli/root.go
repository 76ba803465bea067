package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront API: product catalog, user accounts and order management",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
