package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/answer"
	"github.com/abhisek/kotoba/internal/exercise"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/store"
)

// ErrNoExercises is returned when a skill yields an empty exercise set.
var ErrNoExercises = errors.New("no exercises could be generated")

// Practice runs sessions end to end: generate, validate, record and
// persist after every step so a run can be resumed later.
type Practice struct {
	Generator *exercise.Generator
	Sessions  *session.Manager
	Snapshots store.SnapshotRepo
	Events    store.EventRepo
	UserID    string

	// Keep is how many of the user's completed snapshots survive when a
	// session completes. Unfinished ones are never pruned.
	// 0 keeps everything.
	Keep int

	Log logrus.FieldLogger
}

// Outcome is the result of answering one exercise.
type Outcome struct {
	Result answer.Result
	Submit session.SubmitResult
}

// Start generates an exercise set for skillID and opens a session on it.
// Idle sessions are swept first.
func (p *Practice) Start(ctx context.Context, skillID string, count, difficulty int, types ...exercise.Type) (*session.Session, error) {
	p.Sessions.CleanupOldSessions()

	exercises := p.Generator.GenerateSet(ctx, skillID, count, difficulty, types...)
	if len(exercises) == 0 {
		return nil, fmt.Errorf("%w for skill %q", ErrNoExercises, skillID)
	}

	s := p.Sessions.Create(p.UserID, skillID, exercises)
	if err := p.save(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// Resume loads the user's most recent unfinished session. It returns nil
// when there is nothing to resume.
func (p *Practice) Resume(ctx context.Context) (*session.Session, error) {
	p.Sessions.CleanupOldSessions()

	snap, err := p.Snapshots.Latest(ctx, p.UserID)
	if err != nil || snap == nil {
		return nil, err
	}
	s, err := p.Sessions.Restore(snap.Data)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", snap.SessionID, err)
	}
	p.Log.WithFields(logrus.Fields{
		"session": s.ID,
		"index":   s.CurrentIndex,
	}).Debug("session resumed")
	return s, nil
}

// Answer validates sub against the session's current exercise and records
// it. Failing to record the answer event is logged, not returned.
func (p *Practice) Answer(ctx context.Context, sessionID string, sub answer.Submission) (Outcome, error) {
	ex := p.Sessions.CurrentExercise(sessionID)
	if ex == nil {
		if _, err := p.Sessions.Get(sessionID); err != nil {
			return Outcome{}, err
		}
		return Outcome{}, fmt.Errorf("%w: session %s", session.ErrNoCurrentExercise, sessionID)
	}

	res := answer.Validate(ex, sub)
	sr, err := p.Sessions.SubmitAnswer(sessionID, sub, res)
	if err != nil {
		return Outcome{}, err
	}

	ev := store.AnswerEventData{
		SessionID:     sessionID,
		SkillID:       sr.Session.SkillID,
		ExerciseType:  string(ex.Kind()),
		Word:          ex.Base().Word.Japanese,
		CorrectAnswer: exercise.CorrectAnswer(ex),
		LearnerAnswer: sub.String(),
		Correct:       res.Correct,
		Score:         res.Score,
		MatchType:     string(res.MatchType),
	}
	if err := p.Events.AppendAnswer(ctx, ev); err != nil {
		p.Log.WithError(err).Warn("failed to record answer event")
	}

	if err := p.save(ctx, sessionID); err != nil {
		return Outcome{}, err
	}
	return Outcome{Result: res, Submit: sr}, nil
}

// Next moves to the following exercise. It returns nil once the session
// is complete.
func (p *Practice) Next(ctx context.Context, sessionID string) (exercise.Exercise, error) {
	ex, err := p.Sessions.NextExercise(sessionID)
	if err != nil {
		return nil, err
	}
	if err := p.save(ctx, sessionID); err != nil {
		return nil, err
	}
	return ex, nil
}

// Finish summarizes the session and drops it from memory. Its snapshot
// stays in the store.
func (p *Practice) Finish(sessionID string) (session.Summary, error) {
	sum, err := p.Sessions.Summary(sessionID)
	if err != nil {
		return session.Summary{}, err
	}
	p.Sessions.Delete(sessionID)
	return sum, nil
}

// Abandon ends a session early, for example when the learner runs out of
// hearts. The session is summarized and forgotten, and its snapshot is
// deleted so it is not offered for resumption.
func (p *Practice) Abandon(ctx context.Context, sessionID string) (session.Summary, error) {
	sum, err := p.Finish(sessionID)
	if err != nil {
		return session.Summary{}, err
	}
	if err := p.Snapshots.Delete(ctx, sessionID); err != nil {
		return sum, err
	}
	return sum, nil
}

func (p *Practice) save(ctx context.Context, sessionID string) error {
	s, err := p.Sessions.Get(sessionID)
	if err != nil {
		return err
	}
	data, err := p.Sessions.Save(sessionID)
	if err != nil {
		return err
	}

	err = p.Snapshots.Save(ctx, &store.Snapshot{
		SessionID: s.ID,
		UserID:    s.UserID,
		SkillID:   s.SkillID,
		Completed: s.Completed,
		UpdatedAt: s.LastActivity,
		Data:      data,
	})
	if err != nil {
		return err
	}

	if s.Completed && p.Keep > 0 {
		if err := p.Snapshots.Prune(ctx, s.UserID, p.Keep); err != nil {
			p.Log.WithError(err).Warn("failed to prune snapshots")
		}
	}
	return nil
}
