package trackcal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "trackcal",
	Short: "trackcal logs meals and tracks calories against a personal goal",
	Long: "trackcal is a local-first calorie tracker: set up a profile to get a personalized\n" +
		"daily calorie and macro goal, log meals manually or from a food photo via Gemini,\n" +
		"and browse per-day totals and history.",
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
