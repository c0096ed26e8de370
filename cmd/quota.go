package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/profile"
)

var quotaCmd = &cobra.Command{
	Use:   "quota <words-per-day>",
	Short: "Set the daily number of new words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid quota %q: must be a positive number", args[0])
		}

		ctx := cmd.Context()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if e.loadProfile(ctx) == profile.StatusDegraded {
			return fmt.Errorf("backend unreachable; quota not saved")
		}
		if err := e.profiles.CommitQuota(ctx, n); err != nil {
			return fmt.Errorf("quota not saved: %w", err)
		}
		fmt.Printf("Daily quota set to %d words.\n", n)
		return nil
	},
}
