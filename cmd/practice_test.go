package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/app"
	"github.com/abhisek/kotoba/internal/config"
	"github.com/abhisek/kotoba/internal/exercise"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/vocab"
)

func newTestApp(t *testing.T, dbPath string) *app.App {
	t.Helper()
	log, _ := test.NewNullLogger()
	c := &config.Config{
		UserID:   "tester",
		Exercise: config.ExerciseConfig{Count: 5, Difficulty: 1, HistoryCap: 100},
		Session:  config.SessionConfig{MaxIdle: time.Hour, KeepSnapshots: 5},
	}
	a, err := app.New(context.Background(), c, dbPath, log, app.Options{
		Words: &vocab.MemoryProvider{Lists: map[int][]vocab.Word{1: {
			{Japanese: "犬", Furigana: "いぬ", Translation: "dog"},
			{Japanese: "猫", Furigana: "ねこ", Translation: "cat"},
			{Japanese: "水", Furigana: "みず", Translation: "water"},
			{Japanese: "本", Furigana: "ほん", Translation: "book"},
			{Japanese: "車", Furigana: "くるま", Translation: "car"},
		}}},
		Exercise: exercise.Config{Rand: rand.New(rand.NewPCG(3, 5))},
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

// choices returns one input line per exercise, picking the right option
// or a wrong one.
func choices(t *testing.T, s *session.Session, right bool) []string {
	t.Helper()
	var lines []string
	for _, ex := range s.Exercises {
		mc, ok := ex.(*exercise.MultipleChoice)
		require.True(t, ok)
		i := mc.CorrectIndex
		if !right {
			i = (i + 1) % len(mc.Options)
		}
		lines = append(lines, fmt.Sprint(i+1))
	}
	return lines
}

func TestDrill_Complete(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "kotoba.db"))
	ctx := context.Background()

	s, err := a.Practice.Start(ctx, "day-1", 3, 1, exercise.TypeMultipleChoice)
	require.NoError(t, err)

	input := append([]string{"", "nine", "?"}, choices(t, s, true)...)
	var out bytes.Buffer
	require.NoError(t, drill(ctx, a.Practice, s.ID, strings.NewReader(strings.Join(input, "\n")+"\n"), &out))

	assert.Contains(t, out.String(), "enter a number from 1 to")
	assert.Contains(t, out.String(), "No hint for this one.")
	assert.Contains(t, out.String(), "Session complete")
	assert.Contains(t, out.String(), "3 of 3 (100%)")
	assert.Equal(t, 0, a.Sessions.Len())

	resumed, err := a.Practice.Resume(ctx)
	require.NoError(t, err)
	assert.Nil(t, resumed, "completed sessions are not resumable")
}

func TestDrill_OutOfHearts(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "kotoba.db"))
	ctx := context.Background()

	s, err := a.Practice.Start(ctx, "day-1", session.StartingHearts+1, 1, exercise.TypeMultipleChoice)
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.Join(choices(t, s, false), "\n") + "\n"
	require.NoError(t, drill(ctx, a.Practice, s.ID, strings.NewReader(in), &out))

	assert.Contains(t, out.String(), "Out of hearts")
	assert.Equal(t, session.StartingHearts, strings.Count(out.String(), "✗"))

	resumed, err := a.Practice.Resume(ctx)
	require.NoError(t, err)
	assert.Nil(t, resumed)
}

func TestDrill_InterruptedIsResumable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kotoba.db")
	a := newTestApp(t, dbPath)
	ctx := context.Background()

	s, err := a.Practice.Start(ctx, "day-1", 3, 1, exercise.TypeMultipleChoice)
	require.NoError(t, err)
	first := choices(t, s, true)[0]

	var out bytes.Buffer
	require.NoError(t, drill(ctx, a.Practice, s.ID, strings.NewReader(first+"\n:q\n"), &out))
	assert.Contains(t, out.String(), "kotoba practice --resume")

	resumed, err := a.Practice.Resume(ctx)
	require.NoError(t, err)
	require.NotNil(t, resumed)
	assert.Equal(t, s.ID, resumed.ID)
	assert.Equal(t, 1, resumed.CurrentIndex)
}
