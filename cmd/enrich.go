package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Generate example sentences for words that have none",
	Long: `Ask the configured LLM for a short example sentence for each word
without one. Fill-in-the-blank exercises prefer these sentences.

Requests are recorded; inspect them with 'kotoba llm list'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.Enricher(ctx)
		if err != nil {
			return err
		}
		rep, err := e.EnrichMissing(ctx, a.Store.WordRepo(), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if rep.Candidates == 0 {
			fmt.Fprintln(out, "Every word already has a sentence.")
			return nil
		}
		fmt.Fprintf(out, "Added sentences to %d of %d words", rep.Enriched, rep.Candidates)
		if rep.Failed > 0 {
			fmt.Fprintf(out, " (%d failed)", rep.Failed)
		}
		fmt.Fprintln(out, ".")
		return nil
	},
}

func init() {
	enrichCmd.Flags().IntP("limit", "n", 20, "Maximum number of words to enrich")
}
