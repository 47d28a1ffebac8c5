package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/exercise"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

var generateCmd = &cobra.Command{
	Use:   "generate [skill]",
	Short: "Generate an exercise set without starting a session",
	Long: `Generate exercises for a skill and print them with their answers.

This is a stateless preview: nothing is saved and no history is kept.
Use --json to get the exercise documents as the session stores them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		skill := defaultSkill
		if len(args) > 0 {
			skill = args[0]
		}
		count, difficulty, types, err := exerciseFlags(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		set := exercise.List(a.Generator.GenerateSet(cmd.Context(), skill, count, difficulty, types...))
		if len(set) == 0 {
			return fmt.Errorf("no exercises for skill %q", skill)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(set)
		}

		for i, ex := range set {
			fmt.Fprintf(out, "── %d/%d %s (%d points) ──\n", i+1, len(set), ex.Kind(), ex.Base().Points)
			fmt.Fprint(out, newPrompt(ex).render())
			fmt.Fprintln(out, theme.Hint.Render("Answer: "+exercise.CorrectAnswer(ex)))
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d exercises for %s\n", len(set), skill)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("count", "n", 0, "Number of exercises (default from config)")
	generateCmd.Flags().IntP("difficulty", "d", 0, "Difficulty 1-5 (default from config)")
	generateCmd.Flags().StringSliceP("type", "t", nil, "Exercise types to include, e.g. mc,translate,match")
	generateCmd.Flags().Bool("json", false, "Print exercises as JSON")
}
