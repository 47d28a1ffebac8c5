package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
)

// sequenceCounter manages the global monotonic sequence number shared
// across all event tables, so answers and LLM requests can be ordered
// against each other. The mutex serializes within the process; the
// RETURNING clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on plain SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) timestamp() int64 {
	if r.now != nil {
		return r.now().UnixMilli()
	}
	return time.Now().UnixMilli()
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, timestamp, session_id, skill_id, exercise_type, word,
		 correct_answer, learner_answer, correct, score, match_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(), data.SessionID, data.SkillID, data.ExerciseType, data.Word,
		data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.Score, data.MatchType,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AccuracyByType(ctx context.Context) ([]TypeAccuracy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT exercise_type, COUNT(*), SUM(correct), AVG(score)
		FROM answer_events GROUP BY exercise_type ORDER BY exercise_type`)
	if err != nil {
		return nil, fmt.Errorf("query accuracy by type: %w", err)
	}
	defer rows.Close()

	var out []TypeAccuracy
	for rows.Next() {
		var ta TypeAccuracy
		if err := rows.Scan(&ta.ExerciseType, &ta.Attempts, &ta.Correct, &ta.AvgScore); err != nil {
			return nil, fmt.Errorf("scan accuracy: %w", err)
		}
		out = append(out, ta)
	}
	return out, rows.Err()
}

// where builds the SQL filter of QueryOpts over llm_request_events.
func (o QueryOpts) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, o.To.UnixMilli())
	}
	if o.Purpose != "" {
		conds = append(conds, "purpose = ?")
		args = append(args, o.Purpose)
	}
	if o.Failed {
		conds = append(conds, "success = 0")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
