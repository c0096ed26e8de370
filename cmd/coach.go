package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/coach"
	"github.com/abhisek/vocabdrill/internal/words"
)

var coachCmd = &cobra.Command{
	Use:   "coach <word>",
	Short: "Ask the word coach for an example and a mnemonic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		translation, _ := cmd.Flags().GetString("translation")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		c := e.newCoach(ctx)
		tip, err := c.Explain(ctx, words.Word{
			English:     strings.Join(args, " "),
			Translation: translation,
		})
		if errors.Is(err, coach.ErrDisabled) {
			return fmt.Errorf("%w: set coach.provider in the config or VOCABDRILL_COACH_PROVIDER", err)
		}
		if err != nil {
			return err
		}

		fmt.Println(tip.Example)
		fmt.Println(tip.Translation)
		if tip.Mnemonic != "" {
			fmt.Println()
			fmt.Println(tip.Mnemonic)
		}
		return nil
	},
}

func init() {
	coachCmd.Flags().StringP("translation", "t", "", "Russian translation to anchor the explanation")
}
