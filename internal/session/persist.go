package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Save serializes the full session.
func (m *Manager) Save(id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return json.Marshal(s)
}

// Restore registers a session previously produced by Save, replacing any
// live session with the same ID. Progress is recomputed from the current
// index and the session counts as active from now.
func (m *Manager) Restore(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	if s.ID == "" {
		return nil, errors.New("decoding session: missing id")
	}
	if s.Answers == nil {
		s.Answers = []Answer{}
	}

	s.Progress = 0
	if len(s.Exercises) > 0 {
		s.Progress = float64(s.CurrentIndex) / float64(len(s.Exercises)) * 100
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s.LastActivity = m.now()
	m.sessions[s.ID] = &s
	return s.clone(), nil
}

// CleanupOldSessions removes sessions idle for longer than the configured
// window and returns how many were removed.
func (m *Manager) CleanupOldSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.maxIdle)
	removed := 0
	for id, s := range m.sessions {
		if s.LastActivity.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.WithField("removed", removed).Info("cleaned up idle sessions")
	}
	return removed
}

// StartJanitor runs CleanupOldSessions every interval until ctx is done.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				m.log.WithField("reason", ctx.Err()).Debug("session janitor stopped")
				return
			case <-ticker.C:
				m.CleanupOldSessions()
			}
		}
	}()
	m.log.WithFields(logrus.Fields{"interval": interval}).Debug("session janitor started")
}
