package engine

import "github.com/verte-zerg/typego/internal/model"

// Status is the session state.
type Status int

// Session states.
const (
	StatusIdle Status = iota
	StatusRunning
	StatusTimedUp
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusTimedUp:
		return "timed-up"
	default:
		return "unknown"
	}
}

// NoInput marks a position with no typed character.
const NoInput rune = -1

func newTyped(n int) []rune {
	typed := make([]rune, n)
	for i := range typed {
		typed[i] = NoInput
	}
	return typed
}

// Snapshot is a read-only copy of the engine state for rendering.
type Snapshot struct {
	Target        []rune
	Typed         []rune
	Cursor        int
	Errors        int
	TimeRemaining int
	Duration      int
	Status        Status
	Run           uint64
	Lang          string
	LoadErr       error
	Last          *model.Result
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Target:        append([]rune(nil), e.target...),
		Typed:         append([]rune(nil), e.typed...),
		Cursor:        e.cursor,
		Errors:        e.errors,
		TimeRemaining: e.remaining,
		Duration:      e.duration,
		Status:        e.status,
		Run:           e.run,
		Lang:          e.lang,
		LoadErr:       e.loadErr,
	}
	if e.last != nil {
		last := *e.last
		snap.Last = &last
	}
	return snap
}

// TypedAt returns the character typed at position i, if any.
func (s Snapshot) TypedAt(i int) (rune, bool) {
	if i < 0 || i >= len(s.Typed) || s.Typed[i] == NoInput {
		return 0, false
	}
	return s.Typed[i], true
}

// NetTyped counts the characters currently entered.
func (s Snapshot) NetTyped() int {
	n := 0
	for _, r := range s.Typed {
		if r != NoInput {
			n++
		}
	}
	return n
}

// WPM is the speed the session would score if it ended now.
func (s Snapshot) WPM() int {
	return wpm(s.NetTyped())
}
