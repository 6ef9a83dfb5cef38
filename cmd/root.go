package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sieve",
	Short: "A pattern-match coverage checker",
	Long: `Sieve decides whether the patterns of a switch cover every value of
the subject type, and suggests the minimal set of missing cases when they do
not. Switches and the enum types they match over are described in YAML
scenario files.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print residual spaces and absorbed declarations")
}
