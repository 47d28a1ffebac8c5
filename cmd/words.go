package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/vocab"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the word bank",
}

var wordsImportCmd = &cobra.Command{
	Use:   "import <dir|file>",
	Short: "Import day-N.json word lists into the database",
	Long: `Import word lists. A directory imports every day-N.json file in it.
A single file takes its day from its name or from --day.
Re-importing a word updates it in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]
		day, _ := cmd.Flags().GetInt("day")

		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		lists := map[int][]vocab.Word{}
		if info.IsDir() {
			dp := vocab.NewDirProvider(path)
			days, err := dp.Days()
			if err != nil {
				return err
			}
			if len(days) == 0 {
				return fmt.Errorf("no day-N.json files in %s", path)
			}
			for _, d := range days {
				if lists[d], err = dp.WordsForDay(ctx, d); err != nil {
					return err
				}
			}
		} else {
			if day == 0 {
				var ok bool
				if day, ok = vocab.DayFromFilename(filepath.Base(path)); !ok {
					return fmt.Errorf("cannot tell the day of %s, use --day", filepath.Base(path))
				}
			}
			if lists[day], err = vocab.ReadWordFile(path); err != nil {
				return err
			}
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		total := 0
		for d, words := range lists {
			n, err := s.WordRepo().Upsert(ctx, d, words)
			if err != nil {
				return fmt.Errorf("import day %d: %w", d, err)
			}
			log.WithField("day", d).WithField("words", n).Info("words imported")
			total += n
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words across %d days.\n", total, len(lists))
		return nil
	},
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study days, or the words of one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		day, _ := cmd.Flags().GetInt("day")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if day == 0 {
			days, err := s.WordRepo().Days(ctx)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				fmt.Fprintln(out, "No words imported yet.")
				return nil
			}
			fmt.Fprintf(out, "%-8s  %s\n", "Day", "Words")
			fmt.Fprintln(out, strings.Repeat("─", 20))
			for _, d := range days {
				fmt.Fprintf(out, "%-8s  %d\n", fmt.Sprintf("day-%d", d.Day), d.Words)
			}
			return nil
		}

		words, err := s.WordRepo().WordsForDay(ctx, day)
		if err != nil {
			return err
		}
		if len(words) == 0 {
			return fmt.Errorf("no words for day %d", day)
		}
		fmt.Fprintf(out, "%-12s  %-14s  %s\n", "Japanese", "Reading", "Meaning")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, w := range words {
			mark := ""
			if w.Sentence != "" {
				mark = "  ✎"
			}
			fmt.Fprintf(out, "%-12s  %-14s  %s%s\n", w.Japanese, w.Reading(), w.Translation, mark)
		}
		fmt.Fprintf(out, "\n%d words\n", len(words))
		return nil
	},
}

func init() {
	wordsImportCmd.Flags().Int("day", 0, "Study day for a single file")
	wordsListCmd.Flags().Int("day", 0, "Show the words of this day")

	wordsCmd.AddCommand(wordsImportCmd)
	wordsCmd.AddCommand(wordsListCmd)
}
