package store

import (
	"context"
	"time"
)

// QueryOpts configures LLM event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose ("" = any)
	Failed  bool      // only failed requests
}

// Snapshot is a saved exercise session. Data holds the serialized session
// exactly as the session manager produced it.
type Snapshot struct {
	SessionID string
	UserID    string
	SkillID   string
	Completed bool
	UpdatedAt time.Time
	Data      []byte
}

// SnapshotRepo persists exercise sessions between runs.
type SnapshotRepo interface {
	// Save stores a snapshot, replacing any earlier one for the session.
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the snapshot for a session, or nil if none exists.
	Load(ctx context.Context, sessionID string) (*Snapshot, error)

	// Latest returns the most recently updated unfinished snapshot for a
	// user, or nil if none exist.
	Latest(ctx context.Context, userID string) (*Snapshot, error)

	// Delete removes a session's snapshot.
	Delete(ctx context.Context, sessionID string) error

	// Prune deletes a user's completed snapshots except the N most recent.
	// Unfinished snapshots are never pruned.
	Prune(ctx context.Context, userID string, keep int) error
}

// AnswerEventData captures one validated answer.
type AnswerEventData struct {
	SessionID     string
	SkillID       string
	ExerciseType  string
	Word          string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	Score         float64
	MatchType     string
}

// TypeAccuracy aggregates answers per exercise type.
type TypeAccuracy struct {
	ExerciseType string
	Attempts     int
	Correct      int
	AvgScore     float64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates the requests made to one model.
type LLMUsage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswer records a validated answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AccuracyByType aggregates recorded answers per exercise type.
	AccuracyByType(ctx context.Context) ([]TypeAccuracy, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByModel aggregates requests per model, optionally for one
	// purpose ("" = all).
	LLMUsageByModel(ctx context.Context, purpose string) ([]LLMUsage, error)
}
