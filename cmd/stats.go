package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		days, err := s.WordRepo().Days(ctx)
		if err != nil {
			return fmt.Errorf("query days: %w", err)
		}
		words := 0
		for _, d := range days {
			words += d.Words
		}
		fmt.Fprintf(out, "Word bank: %d words over %d days\n\n", words, len(days))

		acc, err := s.EventRepo().AccuracyByType(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(acc) == 0 {
			fmt.Fprintln(out, "No answers recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Accuracy by Exercise Type")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		var attempts, correct int
		for _, a := range acc {
			pct := 100 * float64(a.Correct) / float64(a.Attempts)
			bar := components.ProgressBar{Label: fmt.Sprintf("%-16s", a.ExerciseType), Percent: pct, Width: 52}.View()
			fmt.Fprintf(out, "%s  %4d/%-4d\n", bar, a.Correct, a.Attempts)
			attempts += a.Attempts
			correct += a.Correct
		}
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-16s  %d of %d answers correct (%.0f%%)\n",
			"TOTAL", correct, attempts, 100*float64(correct)/float64(attempts))
		return nil
	},
}
