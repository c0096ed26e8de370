package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Show word coach token usage from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		u, err := e.store.EventRepo().LLMUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if u.Requests == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Printf("%8s  %8s  %10s  %10s  %10s\n", "Calls", "Failed", "Input", "Output", "Total")
		fmt.Println(strings.Repeat("─", 54))
		fmt.Printf("%8d  %8d  %10d  %10d  %10d\n",
			u.Requests, u.Failures, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens)
		return nil
	},
}
