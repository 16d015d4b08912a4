package cmd

import (
	"os"

	"github.com/cimillas/gym-slots/services/cli/api"
	"github.com/spf13/cobra"
)

var (
	apiBaseURL string
	userID     string
	classID    string
	client     *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "gymctl",
	Short: "CLI for the gym-slots reservation API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		client = api.NewClient(apiBaseURL)
	},
	SilenceUsage: true,
}

func Execute() {
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(lockCmd())
	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(releaseCmd())
	rootCmd.AddCommand(cancelCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "API base URL (default http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "Acting user identity")
	rootCmd.PersistentFlags().StringVar(&classID, "class", "", "Class scope (optional)")
}
