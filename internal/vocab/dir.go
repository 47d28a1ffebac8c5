package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var dayFilePattern = regexp.MustCompile(`^day-(\d+)\.json$`)

// DirProvider reads word lists from a directory of day files named
// "day-<n>.json", each holding a JSON array of words.
type DirProvider struct {
	Dir string
}

// NewDirProvider returns a provider rooted at dir.
func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{Dir: dir}
}

// Days lists the study days available in the directory, ascending.
func (p *DirProvider) Days() ([]int, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return nil, fmt.Errorf("read words dir: %w", err)
	}

	var days []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n, ok := DayFromFilename(e.Name()); ok {
			days = append(days, n)
		}
	}
	sort.Ints(days)
	return days, nil
}

// DayFromFilename extracts the study day from a "day-<n>.json" name.
func DayFromFilename(name string) (int, bool) {
	m := dayFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

func (p *DirProvider) Words(ctx context.Context) ([]Word, error) {
	days, err := p.Days()
	if err != nil {
		return nil, err
	}

	var all []Word
	for _, d := range days {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		words, err := p.WordsForDay(ctx, d)
		if err != nil {
			return nil, err
		}
		all = append(all, words...)
	}
	return all, nil
}

func (p *DirProvider) WordsForDay(_ context.Context, day int) ([]Word, error) {
	path := filepath.Join(p.Dir, fmt.Sprintf("day-%d.json", day))
	words, err := ReadWordFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return words, err
}

// ReadWordFile decodes a JSON array of words, dropping entries without
// Japanese text or a translation.
func ReadWordFile(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	var raw []Word
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	words := raw[:0]
	for _, w := range raw {
		if w.Japanese == "" || w.Translation == "" {
			continue
		}
		words = append(words, w)
	}
	return words, nil
}

// MemoryProvider serves fixed word lists, keyed by study day. It is meant
// for tests and for callers that already hold their words in memory. A
// non-nil Err is returned from every call, to stand in for a failing source.
type MemoryProvider struct {
	Lists map[int][]Word
	Err   error
}

func (p *MemoryProvider) Words(_ context.Context) ([]Word, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	days := make([]int, 0, len(p.Lists))
	for d := range p.Lists {
		days = append(days, d)
	}
	sort.Ints(days)

	var all []Word
	for _, d := range days {
		all = append(all, p.Lists[d]...)
	}
	return all, nil
}

func (p *MemoryProvider) WordsForDay(_ context.Context, day int) ([]Word, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Lists[day], nil
}
