package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/export"
)

// missedLimit is large enough to cover every word a learner has missed.
const missedLimit = 10000

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export learned words to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		ctx := cmd.Context()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		e.loadProfile(ctx)
		p := e.profiles.Current()
		if p.LearnedCount() == 0 {
			fmt.Println("No learned words to export yet.")
			return nil
		}

		ws := e.words.FetchByIDs(ctx, p.Learned)
		if len(ws) == 0 {
			return fmt.Errorf("could not fetch the learned words from the backend")
		}

		misses := make(map[int64]int)
		if missed, err := e.store.EventRepo().MostMissed(ctx, missedLimit); err == nil {
			for _, m := range missed {
				misses[m.WordID] = m.Misses
			}
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		if err := export.Write(f, export.Sheet{
			Owner:  p.DisplayName(),
			Words:  ws,
			Misses: misses,
			At:     clock(),
		}); err != nil {
			return err
		}
		fmt.Printf("Exported %d words to %s\n", len(ws), out)
		return f.Close()
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "vocabdrill.xlsx", "Output file")
}
