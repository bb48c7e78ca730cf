// @title        Insulin Advisor API
// @version      1.0
// @description  Stateless bedside insulin dosing recommendations (IV infusion and Basal Bolus protocols).
// @BasePath     /
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "insulin_advisor/docs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:          "insulin-advisor",
		Short:        "Insulin dosing recommendation service",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; real environment variables win
			_ = godotenv.Load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config.yml (default: configs/config.yml)")

	rootCmd.AddCommand(serveCmd(&cfgPath))
	rootCmd.AddCommand(recommendCmd(&cfgPath))
	rootCmd.AddCommand(checkTableCmd(&cfgPath))
	return rootCmd
}
