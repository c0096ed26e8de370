package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/drill"
)

var rootCmd = &cobra.Command{
	Use:   "vocabdrill",
	Short: "Learn English words in the terminal",
	Long:  "VocabDrill: learn English words in small batches with quizzes and typed answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/vocabdrill/config.yaml)")
	rootCmd.PersistentFlags().String("api", "", "Backend base URL (overrides VOCABDRILL_API_URL)")
	rootCmd.PersistentFlags().Int64("user", 0, "Telegram user id to learn as")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite journal (overrides VOCABDRILL_DB env var)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quotaCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start learning new words",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, drill.ModeLearn)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review recently learned words",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, drill.ModeReview)
	},
}
