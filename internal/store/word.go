package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/kotoba/internal/vocab"
)

// WordRepo stores the imported word bank. It implements vocab.Provider.
type WordRepo struct {
	db *sql.DB
}

var _ vocab.Provider = (*WordRepo)(nil)

// StoredWord is a word with its row ID and study day.
type StoredWord struct {
	ID  int64
	Day int
	vocab.Word
}

// DayCount reports how many words a study day holds.
type DayCount struct {
	Day   int
	Words int
}

// Upsert inserts words for a day. A word already present (same Japanese
// and translation) is moved to the day and its reading updated; an
// existing sentence is kept unless the new word carries one.
func (r *WordRepo) Upsert(ctx context.Context, day int, words []vocab.Word) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words
		(day, japanese, furigana, translation, sentence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (japanese, translation) DO UPDATE SET
			day = excluded.day,
			furigana = excluded.furigana,
			sentence = CASE WHEN excluded.sentence <> '' THEN excluded.sentence ELSE words.sentence END`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, day, w.Japanese, w.Furigana, w.Translation, w.Sentence, now); err != nil {
			return 0, fmt.Errorf("upsert word %q: %w", w.Japanese, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(words), nil
}

// Words returns every stored word ordered by day and insertion.
func (r *WordRepo) Words(ctx context.Context) ([]vocab.Word, error) {
	stored, err := r.query(ctx, `SELECT id, day, japanese, furigana, translation, sentence
		FROM words ORDER BY day, id`)
	if err != nil {
		return nil, err
	}
	return unwrap(stored), nil
}

// WordsForDay returns the words of one study day.
func (r *WordRepo) WordsForDay(ctx context.Context, day int) ([]vocab.Word, error) {
	stored, err := r.query(ctx, `SELECT id, day, japanese, furigana, translation, sentence
		FROM words WHERE day = ? ORDER BY id`, day)
	if err != nil {
		return nil, err
	}
	return unwrap(stored), nil
}

// WordsMissingSentence returns up to limit words without an example
// sentence (0 = unlimited).
func (r *WordRepo) WordsMissingSentence(ctx context.Context, limit int) ([]StoredWord, error) {
	query := `SELECT id, day, japanese, furigana, translation, sentence
		FROM words WHERE sentence = '' ORDER BY day, id`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return r.query(ctx, query, args...)
}

// SetSentence stores an example sentence for a word.
func (r *WordRepo) SetSentence(ctx context.Context, id int64, sentence string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE words SET sentence = ? WHERE id = ?`, sentence, id)
	if err != nil {
		return fmt.Errorf("set sentence: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set sentence: word %d not found", id)
	}
	return nil
}

// Days lists the study days with their word counts.
func (r *WordRepo) Days(ctx context.Context) ([]DayCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day, COUNT(*) FROM words GROUP BY day ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Words); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

// DeleteAll removes every stored word.
func (r *WordRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM words`)
	return err
}

func (r *WordRepo) query(ctx context.Context, query string, args ...any) ([]StoredWord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var out []StoredWord
	for rows.Next() {
		var w StoredWord
		if err := rows.Scan(&w.ID, &w.Day, &w.Japanese, &w.Furigana, &w.Translation, &w.Sentence); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func unwrap(stored []StoredWord) []vocab.Word {
	words := make([]vocab.Word, len(stored))
	for i, s := range stored {
		words[i] = s.Word
	}
	return words
}
