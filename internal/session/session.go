// Package session tracks learner runs through generated exercise sets.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/answer"
	"github.com/abhisek/kotoba/internal/exercise"
)

// StartingHearts is the number of lives a new session starts with.
const StartingHearts = 5

// DefaultMaxIdle is how long a session may sit idle before cleanup removes it.
const DefaultMaxIdle = 24 * time.Hour

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoCurrentExercise = errors.New("no current exercise")
)

// Session is one learner's run through an exercise set.
type Session struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	SkillID      string        `json:"skillId"`
	Exercises    exercise.List `json:"exercises"`
	CurrentIndex int           `json:"currentIndex"`
	Answers      []Answer      `json:"answers"`
	Score        float64       `json:"score"`
	Mistakes     int           `json:"mistakes"`
	Hearts       int           `json:"hearts"`
	StartTime    time.Time     `json:"startTime"`
	LastActivity time.Time     `json:"lastActivity"`
	Completed    bool          `json:"completed"`
	Progress     float64       `json:"progress"`
}

// Answer records one submission.
type Answer struct {
	ExerciseID    string            `json:"exerciseId"`
	ExerciseIndex int               `json:"exerciseIndex"`
	Type          exercise.Type     `json:"type"`
	Submission    answer.Submission `json:"submission"`
	Correct       bool              `json:"correct"`
	Score         float64           `json:"score"`
	Points        float64           `json:"points"`
	Timestamp     time.Time         `json:"timestamp"`
}

// SubmitResult is returned by SubmitAnswer. IsComplete reports whether
// the answered exercise was the last one; NextExercise still has to be
// called to mark the session completed.
type SubmitResult struct {
	Answer     Answer
	Session    *Session
	IsComplete bool
}

func (s *Session) clone() *Session {
	c := *s
	c.Exercises = append(exercise.List(nil), s.Exercises...)
	c.Answers = append([]Answer(nil), s.Answers...)
	return &c
}

func (s *Session) current() exercise.Exercise {
	if s.Completed || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Exercises) {
		return nil
	}
	return s.Exercises[s.CurrentIndex]
}

// Config controls session bookkeeping.
type Config struct {
	// MaxIdle is the inactivity window after which sessions are swept.
	MaxIdle time.Duration

	// Now is the clock. Nil uses time.Now.
	Now func() time.Time
}

func DefaultConfig() Config {
	return Config{MaxIdle: DefaultMaxIdle}
}

// Manager is an in-memory session registry. All operations are
// serialized on a mutex, and sessions handed out are copies.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	maxIdle  time.Duration
	now      func() time.Time
	log      logrus.FieldLogger
}

func NewManager(cfg Config, log logrus.FieldLogger) *Manager {
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = DefaultMaxIdle
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		maxIdle:  cfg.MaxIdle,
		now:      cfg.Now,
		log:      log,
	}
}

// Create registers a new session over exercises.
func (m *Manager) Create(userID, skillID string, exercises []exercise.Exercise) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		SkillID:      skillID,
		Exercises:    append(exercise.List(nil), exercises...),
		Answers:      []Answer{},
		Hearts:       StartingHearts,
		StartTime:    now,
		LastActivity: now,
	}
	m.sessions[s.ID] = s

	m.log.WithFields(logrus.Fields{
		"session":   s.ID,
		"skill":     skillID,
		"exercises": len(exercises),
	}).Debug("session created")
	return s.clone()
}

// Get returns a copy of the session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.clone(), nil
}

// CurrentExercise returns the exercise at the current index, or nil when
// the session is missing, completed or out of exercises.
func (m *Manager) CurrentExercise(id string) exercise.Exercise {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	return s.current()
}

// SubmitAnswer records res for the current exercise. A correct answer adds
// res.Score times the exercise points; an incorrect one costs a mistake
// and a heart. Sessions never end on zero hearts; that policy belongs to
// the caller.
func (m *Manager) SubmitAnswer(id string, sub answer.Submission, res answer.Result) (SubmitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return SubmitResult{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	ex := s.current()
	if ex == nil {
		return SubmitResult{}, fmt.Errorf("%w: session %s", ErrNoCurrentExercise, id)
	}

	now := m.now()
	a := Answer{
		ExerciseID:    ex.Base().ID,
		ExerciseIndex: s.CurrentIndex,
		Type:          ex.Kind(),
		Submission:    sub,
		Correct:       res.Correct,
		Score:         res.Score,
		Timestamp:     now,
	}
	if res.Correct {
		a.Points = res.Score * float64(ex.Base().Points)
		s.Score += a.Points
	} else {
		s.Mistakes++
		s.Hearts = max(0, s.Hearts-1)
	}

	s.Answers = append(s.Answers, a)
	s.Progress = float64(s.CurrentIndex+1) / float64(len(s.Exercises)) * 100
	s.LastActivity = now

	return SubmitResult{
		Answer:     a,
		Session:    s.clone(),
		IsComplete: s.CurrentIndex >= len(s.Exercises)-1,
	}, nil
}

// NextExercise advances to the next exercise and returns it. Once the last
// exercise has been passed the session is marked completed and nil is
// returned.
func (m *Manager) NextExercise(id string) (exercise.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.LastActivity = m.now()

	if s.CurrentIndex < len(s.Exercises)-1 {
		s.CurrentIndex++
		return s.Exercises[s.CurrentIndex], nil
	}

	if !s.Completed {
		s.Completed = true
		m.log.WithField("session", id).Debug("session completed")
	}
	return nil, nil
}

// Delete removes a session and reports whether it existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
