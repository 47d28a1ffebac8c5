package session

import (
	"fmt"
	"math"
	"time"
)

// Summary is a read-only projection of a session.
type Summary struct {
	SessionID          string        `json:"sessionId"`
	SkillID            string        `json:"skillId"`
	CorrectAnswers     int           `json:"correctAnswers"`
	TotalAnswers       int           `json:"totalAnswers"`
	Accuracy           int           `json:"accuracy"` // percent
	TimeSpent          time.Duration `json:"timeSpent"`
	Score              int           `json:"score"`
	Hearts             int           `json:"hearts"`
	Mistakes           int           `json:"mistakes"`
	Progress           float64       `json:"progress"`
	Completed          bool          `json:"completed"`
	TotalExercises     int           `json:"totalExercises"`
	CompletedExercises int           `json:"completedExercises"`
}

// Summary derives the session summary. TimeSpent runs from the start to the
// last activity.
func (m *Manager) Summary(id string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Summary{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return summarize(s), nil
}

func summarize(s *Session) Summary {
	correct := 0
	answered := make(map[int]struct{}, len(s.Answers))
	for _, a := range s.Answers {
		if a.Correct {
			correct++
		}
		answered[a.ExerciseIndex] = struct{}{}
	}

	var accuracy int
	if len(s.Answers) > 0 {
		accuracy = int(math.Round(float64(correct) / float64(len(s.Answers)) * 100))
	}

	return Summary{
		SessionID:          s.ID,
		SkillID:            s.SkillID,
		CorrectAnswers:     correct,
		TotalAnswers:       len(s.Answers),
		Accuracy:           accuracy,
		TimeSpent:          s.LastActivity.Sub(s.StartTime),
		Score:              int(math.Round(s.Score)),
		Hearts:             s.Hearts,
		Mistakes:           s.Mistakes,
		Progress:           s.Progress,
		Completed:          s.Completed,
		TotalExercises:     len(s.Exercises),
		CompletedExercises: len(answered),
	}
}
