package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions from the local journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failures, _ := cmd.Flags().GetBool("failures")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		repo := e.store.EventRepo()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		if failures {
			records, err := repo.RecentSyncFailures(ctx, limit)
			if err != nil {
				return fmt.Errorf("query sync failures: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No sync failures recorded.")
				return nil
			}
			fmt.Fprintln(w, "SEQ\tTIME\tOPERATION\tUSER\tSTATUS\tERROR")
			for _, f := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
					f.Sequence, f.Timestamp.Local().Format("2006-01-02 15:04:05"),
					f.Operation, f.UserID, f.Status, f.ErrorMessage)
			}
			return w.Flush()
		}

		sessions, err := repo.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Fprintln(w, "STARTED\tMODE\tWORDS\tBATCHES\tCORRECT\tMISTAKES\tDURATION\tSTATUS")
		for _, s := range sessions {
			status := "done"
			if s.EndedAt.IsZero() {
				status = "unfinished"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d/%d\t%d\t%d:%02d\t%s\n",
				s.StartedAt.Local().Format("2006-01-02 15:04"), s.Mode, s.WordCount,
				s.BatchesCompleted, s.CorrectAnswers, s.Answers, len(s.Mistakes),
				s.DurationSecs/60, s.DurationSecs%60, status)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		missed, err := repo.MostMissed(ctx, 5)
		if err != nil || len(missed) == 0 {
			return nil
		}
		terms := make([]string, 0, len(missed))
		for _, m := range missed {
			terms = append(terms, fmt.Sprintf("%s (%d)", m.Term, m.Misses))
		}
		fmt.Println("\nMost missed:", strings.Join(terms, ", "))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of entries to show")
	historyCmd.Flags().Bool("failures", false, "List swallowed sync failures instead of sessions")
}
