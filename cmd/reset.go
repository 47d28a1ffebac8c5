package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long: `Delete saved sessions and answer history. With --words the imported
word bank is deleted too. LLM request history is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		withWords, _ := cmd.Flags().GetBool("words")
		yes, _ := cmd.Flags().GetBool("yes")

		what := "saved sessions and answer history"
		if withWords {
			what += " and the word bank"
		}
		if !yes {
			fmt.Fprintf(out, "This deletes %s. Continue? [y/N] ", what)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.ResetProgress(ctx); err != nil {
			return err
		}
		if withWords {
			if err := s.WordRepo().DeleteAll(ctx); err != nil {
				return fmt.Errorf("delete words: %w", err)
			}
		}
		log.WithField("words", withWords).Info("learner data reset")
		fmt.Fprintf(out, "Deleted %s.\n", what)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("words", false, "Also delete imported words")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
