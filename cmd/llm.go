package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/enrich"
	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect example sentence requests and their cost",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sentence requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		since, _ := cmd.Flags().GetDuration("since")
		failed, _ := cmd.Flags().GetBool("failed")
		out := cmd.OutOrStdout()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		opts := sentenceQuery(since)
		opts.Limit = limit
		opts.Failed = failed
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "No sentence requests found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-10s  %-7s  %s\n", "ID", "Time", "Word", "Tokens", "Result")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, e := range events {
			a := enrich.DecodeAttempt(e)
			fmt.Fprintf(out, "%-5d  %-16s  %-10s  %-7d  %s\n",
				a.EventID, a.Time.Local().Format("2006-01-02 15:04"), a.Word,
				a.InputTokens+a.OutputTokens, attemptResult(a))
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one sentence request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		raw, _ := cmd.Flags().GetBool("raw")
		out := cmd.OutOrStdout()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		a := enrich.DecodeAttempt(*e)
		fmt.Fprintf(out, "Word:      %s\n", a.Word)
		fmt.Fprintf(out, "Time:      %s\n", a.Time.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Model:     %s (%s)\n", e.Model, e.Provider)
		fmt.Fprintf(out, "Tokens:    %d in / %d out, %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
		if a.Retry() {
			fmt.Fprintf(out, "Retry of:  %s\n", a.Feedback)
		}
		switch {
		case a.Sentence != nil:
			fmt.Fprintf(out, "Sentence:  %s\n", a.Sentence.Japanese)
			fmt.Fprintf(out, "           %s\n", a.Sentence.Translation)
		case a.Err != "":
			fmt.Fprintf(out, "Error:     %s\n", a.Err)
		default:
			fmt.Fprintln(out, "Sentence:  (unreadable response)")
		}

		if raw {
			sep := strings.Repeat("─", 60)
			fmt.Fprintf(out, "\n%s\nREQUEST\n%s\n%s\n", sep, sep, orNone(e.RequestBody))
			fmt.Fprintf(out, "%s\nRESPONSE\n%s\n%s\n", sep, sep, orNone(e.ResponseBody))
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show enrichment cost per day and per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		since, _ := cmd.Flags().GetDuration("since")
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(ctx, sentenceQuery(since))
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "No sentence requests recorded yet.")
			return nil
		}
		attempts := lo.Map(events, func(e store.LLMEvent, _ int) enrich.Attempt {
			return enrich.DecodeAttempt(e)
		})
		printDailyUsage(out, enrichmentByDay(attempts))

		models, err := s.EventRepo().LLMUsageByModel(ctx, llm.PurposeSentence)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		fmt.Fprintln(out)
		printModelUsage(out, models)
		return nil
	},
}

// dayUsage sums the sentence requests made on one local calendar day.
type dayUsage struct {
	Day      string
	Attempts int
	Retries  int
	Failed   int
	Words    int
	Tokens   int
	Cost     float64
	Priced   bool // false when some model had no known pricing
}

// enrichmentByDay groups attempts by local day, newest day first.
func enrichmentByDay(attempts []enrich.Attempt) []dayUsage {
	groups := lo.GroupBy(attempts, func(a enrich.Attempt) string {
		return a.Time.Local().Format(time.DateOnly)
	})
	days := lo.MapToSlice(groups, func(day string, as []enrich.Attempt) dayUsage {
		u := dayUsage{Day: day, Attempts: len(as), Priced: true}
		u.Words = len(lo.Uniq(lo.Map(as, func(a enrich.Attempt, _ int) string { return a.Word })))
		for _, a := range as {
			if a.Retry() {
				u.Retries++
			}
			if a.Err != "" {
				u.Failed++
			}
			u.Tokens += a.InputTokens + a.OutputTokens
			if c, ok := llm.LookupCost(a.Model); ok {
				u.Cost += c.Cost(a.InputTokens, a.OutputTokens)
			} else {
				u.Priced = false
			}
		}
		return u
	})
	// ISO dates sort lexically.
	slices.SortFunc(days, func(a, b dayUsage) int { return strings.Compare(b.Day, a.Day) })
	return days
}

func printDailyUsage(out io.Writer, days []dayUsage) {
	fmt.Fprintln(out, "Sentence Enrichment by Day")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "%-10s  %6s  %8s  %7s  %6s  %10s  %10s\n",
		"Day", "Words", "Requests", "Retries", "Failed", "Tokens", "Cost")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	var words int
	var cost float64
	for _, d := range days {
		fmt.Fprintf(out, "%-10s  %6d  %8d  %7d  %6d  %10d  %10s\n",
			d.Day, d.Words, d.Attempts, d.Retries, d.Failed, d.Tokens, costLabel(d.Cost, d.Priced))
		words += d.Words
		cost += d.Cost
	}
	if words > 0 {
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "Average cost per word: %s\n", formatCost(cost/float64(words)))
	}
}

func printModelUsage(out io.Writer, models []store.LLMUsage) {
	fmt.Fprintln(out, "Cost by Model (USD)")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "%-28s  %6s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Failed", "Input", "Output", "Cost")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, m := range models {
		cost, ok := llm.LookupCost(m.Model)
		fmt.Fprintf(out, "%-28s  %6d  %6d  %10d  %10d  %10s\n",
			truncate(m.Model, 28), m.Calls, m.Failures, m.InputTokens, m.OutputTokens,
			costLabel(cost.Cost(m.InputTokens, m.OutputTokens), ok))
	}
}

func sentenceQuery(since time.Duration) store.QueryOpts {
	opts := store.QueryOpts{Purpose: llm.PurposeSentence}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}
	return opts
}

func attemptResult(a enrich.Attempt) string {
	mark := ""
	if a.Retry() {
		mark = "↻ "
	}
	switch {
	case a.Sentence != nil:
		return mark + a.Sentence.Japanese
	case a.Err != "":
		return mark + "✗ " + truncate(a.Err, 48)
	default:
		return mark + "✗ unreadable response"
	}
}

func orNone(s string) string {
	if s == "" {
		return "(not captured)"
	}
	return s
}

// truncate cuts s to max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func costLabel(usd float64, priced bool) string {
	if !priced {
		return "?"
	}
	return formatCost(usd)
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this, e.g. 24h")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")
	llmViewCmd.Flags().Bool("raw", false, "Also print the raw request and response")
	llmStatsCmd.Flags().Duration("since", 0, "Only count requests newer than this, e.g. 168h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
