package cmd

import (
	"fmt"
	"os"

	"MusicHub/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "musichub",
	Short:         "MusicHub account, play-count and token relay backend.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
