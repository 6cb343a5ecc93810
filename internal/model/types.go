// Package model defines shared data structures.
package model

// Config defines practice settings.
type Config struct {
	Lang        string
	Duration    int
	PhraseCount int
	PhrasesDir  string
	ServerURL   string
}

// ServerConfig defines phrase server settings.
type ServerConfig struct {
	Addr       string
	PhrasesDir string
}

// Result captures a completed typing session. It is never mutated after creation.
type Result struct {
	WPM    int    `json:"wpm"`
	Errors int    `json:"errors"`
	Date   string `json:"date"`
}

// Score is the leaderboard score wpm / (errors + 1).
func (r Result) Score() float64 {
	return float64(r.WPM) / float64(r.Errors+1)
}
