// Package history keeps the bounded, ranked log of typing results.
package history

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/verte-zerg/typego/internal/model"
)

const (
	// Key is the storage key holding the JSON-encoded log.
	Key = "typingHistory"
	// Capacity bounds the number of results kept.
	Capacity = 10
)

// ErrPersistence wraps storage write failures. The in-memory log stays valid.
var ErrPersistence = errors.New("failed to persist history")

// KV is the storage the log is persisted to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store holds results newest-first.
type Store struct {
	kv      KV
	entries []model.Result
}

// New returns an empty store backed by kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Load replaces the in-memory log with the persisted one. On error the log is
// left empty.
func (s *Store) Load(ctx context.Context) error {
	s.entries = nil
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	var entries []model.Result
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return fmt.Errorf("failed to decode history: %w", err)
	}
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	s.entries = entries
	return nil
}

// Record prepends r, evicts the oldest entries beyond Capacity, and writes the
// whole log. A returned error wraps ErrPersistence and is not fatal.
func (s *Store) Record(ctx context.Context, r model.Result) error {
	entries := make([]model.Result, 0, Capacity)
	entries = append(entries, r)
	entries = append(entries, s.entries...)
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	s.entries = entries

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Entries returns a copy of the log, newest first.
func (s *Store) Entries() []model.Result {
	return slices.Clone(s.entries)
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	return len(s.entries)
}

// Ranked is a result with its leaderboard position, starting at 1.
type Ranked struct {
	Rank   int
	Medal  Medal
	Result model.Result
}

// Ranked yields results by descending wpm / (errors + 1). Equal scores keep
// log order, so the more recent result comes first. Each iteration ranks the
// log as it is at that moment.
func (s *Store) Ranked() iter.Seq[Ranked] {
	return func(yield func(Ranked) bool) {
		for r := range Rank(s.entries) {
			if !yield(r) {
				return
			}
		}
	}
}

// Rank orders results as the leaderboard does without modifying them.
func Rank(results []model.Result) iter.Seq[Ranked] {
	return func(yield func(Ranked) bool) {
		sorted := slices.Clone(results)
		slices.SortStableFunc(sorted, compareScore)
		for i, r := range sorted {
			if !yield(Ranked{Rank: i + 1, Medal: MedalFor(i + 1), Result: r}) {
				return
			}
		}
	}
}

// compareScore orders by descending wpm/(errors+1) using integer cross
// multiplication.
func compareScore(a, b model.Result) int {
	left := a.WPM * (b.Errors + 1)
	right := b.WPM * (a.Errors + 1)
	return cmp.Compare(right, left)
}
