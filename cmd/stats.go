package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/progress"
)

// journalWindow matches the number of sessions the home screen reads.
const journalWindow = 50

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		status := e.loadProfile(ctx)
		p := e.profiles.Current()
		now := clock()

		opts := progress.Options{DefaultQuota: e.cfg.Drill.DefaultQuota}
		if records, err := e.store.EventRepo().RecentSessions(ctx, journalWindow); err == nil {
			opts.TrainingsToday = progress.TrainingsToday(records, now)
		}
		st := progress.Compute(p, now, opts)

		quota := "not set"
		if st.QuotaSet {
			quota = fmt.Sprint(st.Quota)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Learner:\t%s (%d)\n", p.DisplayName(), p.TelegramID)
		fmt.Fprintf(w, "Daily quota:\t%s\n", quota)
		fmt.Fprintf(w, "Learned today:\t%d\n", st.LearnedToday)
		fmt.Fprintf(w, "Trainings today:\t%d/%d\n", st.TrainingsToday, st.TrainingsTarget)
		fmt.Fprintf(w, "Total learned:\t%d\n", st.TotalLearned)
		fmt.Fprintf(w, "Streak:\t%d\n", st.Streak)
		fmt.Fprintf(w, "Today:\t%d/%d (%.0f%%)\n", st.Done, st.Target, st.Percent)
		w.Flush()
		fmt.Println(st.Message())

		if status == profile.StatusDegraded {
			fmt.Println("\nBackend unreachable; showing local data only.")
			return nil
		}
		remote, err := e.profiles.FetchStats(ctx)
		if err != nil {
			e.log.Info("backend stats unavailable", "err", err)
			return nil
		}

		fmt.Println("\nBackend")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Total words:\t%d\n", remote.TotalWords)
		fmt.Fprintf(w, "Learned today:\t%d\n", remote.LearnedToday)
		fmt.Fprintf(w, "Trainings:\t%d\n", remote.TrainingCount)
		fmt.Fprintf(w, "Streak:\t%d\n", remote.Streak)
		return w.Flush()
	},
}
