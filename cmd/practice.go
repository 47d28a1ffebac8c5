package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/answer"
	"github.com/abhisek/kotoba/internal/app"
	"github.com/abhisek/kotoba/internal/exercise"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const defaultSkill = "all"

var practiceCmd = &cobra.Command{
	Use:   "practice [skill]",
	Short: "Start a practice session",
	Long: `Start a practice session. The skill selects the words:

  day-N           words from study day N
  kana            the hiragana and katakana tables
  kana-hiragana   hiragana only
  kana-katakana   katakana only
  all             every imported word (default)

Type ? for a hint, :q to stop. Progress is saved after every answer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPractice,
}

func init() {
	addPracticeFlags(practiceCmd)
}

func addPracticeFlags(c *cobra.Command) {
	c.Flags().IntP("count", "n", 0, "Number of exercises (default from config)")
	c.Flags().IntP("difficulty", "d", 0, "Difficulty 1-5 (default from config)")
	c.Flags().StringSliceP("type", "t", nil, "Exercise types to include, e.g. mc,translate,match")
	c.Flags().Bool("resume", false, "Resume the last unfinished session")
}

// exerciseFlags reads the shared generation flags, falling back to config.
func exerciseFlags(cmd *cobra.Command) (count, difficulty int, types []exercise.Type, err error) {
	count, _ = cmd.Flags().GetInt("count")
	if count <= 0 {
		count = cfg.Exercise.Count
	}
	difficulty, _ = cmd.Flags().GetInt("difficulty")
	if difficulty == 0 {
		difficulty = cfg.Exercise.Difficulty
	}
	if difficulty < 1 || difficulty > 5 {
		return 0, 0, nil, fmt.Errorf("difficulty must be between 1 and 5, got %d", difficulty)
	}

	names, _ := cmd.Flags().GetStringSlice("type")
	for _, n := range names {
		t, err := exercise.ParseType(n)
		if err != nil {
			return 0, 0, nil, err
		}
		types = append(types, t)
	}
	return count, difficulty, types, nil
}

func runPractice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.Sessions.StartJanitor(ctx, cfg.Session.MaxIdle)

	var s *session.Session
	if resume, _ := cmd.Flags().GetBool("resume"); resume {
		s, err = a.Practice.Resume(ctx)
		if err != nil {
			return fmt.Errorf("resume session: %w", err)
		}
		if s == nil {
			fmt.Fprintln(out, "No unfinished session to resume.")
			return nil
		}
		fmt.Fprintf(out, "Resuming %s at exercise %d of %d.\n\n", s.SkillID, s.CurrentIndex+1, len(s.Exercises))
	} else {
		skill := defaultSkill
		if len(args) > 0 {
			skill = args[0]
		}
		count, difficulty, types, err := exerciseFlags(cmd)
		if err != nil {
			return err
		}
		s, err = a.Practice.Start(ctx, skill, count, difficulty, types...)
		if errors.Is(err, app.ErrNoExercises) {
			return fmt.Errorf("%w; import words with 'kotoba words import'", err)
		}
		if err != nil {
			return err
		}
	}

	return drill(ctx, a.Practice, s.ID, cmd.InOrStdin(), out)
}

// drill runs the question loop until the session completes, the learner
// runs out of hearts, or input ends. An interrupted session stays saved.
func drill(ctx context.Context, p *app.Practice, sessionID string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for ex := p.Sessions.CurrentExercise(sessionID); ex != nil; {
		s, err := p.Sessions.Get(sessionID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, header(s))

		pr := newPrompt(ex)
		fmt.Fprint(out, pr.render())

		sub, ok := readAnswer(scanner, out, pr)
		if !ok {
			fmt.Fprintln(out, theme.Hint.Render("\nSession saved. Continue with: kotoba practice --resume"))
			p.Sessions.Delete(sessionID)
			return scanner.Err()
		}

		o, err := p.Answer(ctx, sessionID, sub)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, components.Feedback(o.Result.Correct, o.Result.Feedback))
		if !o.Result.Correct && o.Result.CorrectAnswer != "" && !strings.Contains(o.Result.Feedback, o.Result.CorrectAnswer) {
			fmt.Fprintln(out, theme.Body.Render("Answer: "+o.Result.CorrectAnswer))
		}
		if expl := ex.Base().Explanation; expl != "" {
			fmt.Fprintln(out, theme.Hint.Render(expl))
		}
		fmt.Fprintln(out)

		if o.Submit.Session.Hearts == 0 {
			sum, err := p.Abandon(ctx, sessionID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, summaryCard("Out of hearts", sum))
			return nil
		}

		if ex, err = p.Next(ctx, sessionID); err != nil {
			return err
		}
	}

	sum, err := p.Finish(sessionID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, summaryCard("Session complete", sum))
	return nil
}

// readAnswer prompts until the input parses. It reports false when input
// ends or the learner quits.
func readAnswer(scanner *bufio.Scanner, out io.Writer, pr *prompt) (answer.Submission, bool) {
	for {
		fmt.Fprint(out, theme.Subtitle.Render("> "))
		if !scanner.Scan() {
			return answer.Submission{}, false
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case ":q", ":quit":
			return answer.Submission{}, false
		case "?":
			if h := pr.hint(); h != "" {
				fmt.Fprintln(out, theme.Hint.Render("Hint: "+h))
			} else {
				fmt.Fprintln(out, theme.Hint.Render("No hint for this one."))
			}
			continue
		}

		sub, err := pr.parse(line)
		if errors.Is(err, errEmptyAnswer) {
			continue
		}
		if err != nil {
			fmt.Fprintln(out, theme.Incorrect.Render(err.Error()))
			continue
		}
		return sub, true
	}
}

func header(s *session.Session) string {
	title := fmt.Sprintf("Exercise %d/%d", s.CurrentIndex+1, len(s.Exercises))
	bar := components.ProgressBar{Label: title, Percent: s.Progress, Width: 48}.View()
	return bar + "  " + components.Hearts(s.Hearts, session.StartingHearts)
}

func summaryCard(title string, sum session.Summary) string {
	lines := []string{
		theme.Title.Render(title),
		"",
		fmt.Sprintf("Score:     %d", sum.Score),
		fmt.Sprintf("Correct:   %d of %d (%d%%)", sum.CorrectAnswers, sum.TotalAnswers, sum.Accuracy),
		fmt.Sprintf("Exercises: %d of %d", sum.CompletedExercises, sum.TotalExercises),
		fmt.Sprintf("Time:      %s", sum.TimeSpent.Round(time.Second)),
		components.Hearts(sum.Hearts, session.StartingHearts),
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}
