// Package engine implements the typing session state machine.
//
// An Engine is owned by a single event loop and is not safe for concurrent
// use. Timer ticks and delayed reloads carry the run token that was current
// when they were scheduled; tokens from an earlier run are ignored, so a
// stopped or finished session can never be mutated by a late tick.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/typego/internal/generator"
	"github.com/verte-zerg/typego/internal/model"
	"github.com/verte-zerg/typego/internal/phrases"
)

const (
	// DefaultDuration is the session length in seconds.
	DefaultDuration = 60
	// DefaultPhraseCount is the number of phrases joined into one text.
	DefaultPhraseCount = 10
	// ReloadDelay is how long a finished text stays on screen before a fresh one is loaded.
	ReloadDelay = 1200 * time.Millisecond

	// KeyBackspace is the correction key.
	KeyBackspace = "Backspace"
	// CodeSpace is the physical key code of the space bar.
	CodeSpace = "Space"

	resultDateLayout = "2006-01-02 15:04:05"
)

var (
	// ErrEmptyPhraseSet reports that no usable text is loaded.
	ErrEmptyPhraseSet = errors.New("no phrases available")
	// ErrRunning reports an operation that is refused while a session runs.
	ErrRunning = errors.New("session is running")
)

// Recorder receives finished results.
type Recorder interface {
	Record(ctx context.Context, r model.Result) error
}

// Options configures an Engine. Zero values get defaults.
type Options struct {
	Lang        string
	Duration    int
	PhraseCount int
	Source      phrases.Source
	Recorder    Recorder
	Generator   *generator.Generator
	Logger      *slog.Logger
	Now         func() time.Time
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Engine owns one typing session at a time.
type Engine struct {
	lang        string
	duration    int
	phraseCount int
	source      phrases.Source
	recorder    Recorder
	gen         *generator.Generator
	logger      *slog.Logger
	now         func() time.Time

	target    []rune
	typed     []rune
	cursor    int
	errors    int
	remaining int
	status    Status
	run       uint64
	loadErr   error
	last      *model.Result

	subs   []subscriber
	nextID int
}

// New constructs an Engine in the Idle state with no text loaded.
func New(opts Options) *Engine {
	e := &Engine{
		lang:        phrases.NormalizeLang(opts.Lang),
		duration:    opts.Duration,
		phraseCount: opts.PhraseCount,
		source:      opts.Source,
		recorder:    opts.Recorder,
		gen:         opts.Generator,
		logger:      opts.Logger,
		now:         opts.Now,
		status:      StatusIdle,
		loadErr:     ErrEmptyPhraseSet,
	}
	if e.duration <= 0 {
		e.duration = DefaultDuration
	}
	if e.phraseCount <= 0 {
		e.phraseCount = DefaultPhraseCount
	}
	if e.gen == nil {
		e.gen = generator.New()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.now == nil {
		e.now = time.Now
	}
	e.remaining = e.duration
	return e
}

// Status returns the current state.
func (e *Engine) Status() Status {
	return e.status
}

// Run returns the token of the current run. It changes on every start, stop and finish.
func (e *Engine) Run() uint64 {
	return e.run
}

// Lang returns the phrase language.
func (e *Engine) Lang() string {
	return e.lang
}

// Subscribe registers fn to be called with a fresh snapshot after every state
// change. The returned func removes the subscription.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) notify() {
	if len(e.subs) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, s := range append([]subscriber(nil), e.subs...) {
		s.fn(snap)
	}
}

// LoadText builds a new target text from count random phrases and resets the
// session. An empty list leaves the engine without text and returns
// ErrEmptyPhraseSet.
func (e *Engine) LoadText(list []string) error {
	if e.status == StatusRunning {
		return ErrRunning
	}
	defer e.notify()
	e.status = StatusIdle
	e.resetProgress()
	if len(list) == 0 {
		e.target = nil
		e.typed = nil
		e.loadErr = ErrEmptyPhraseSet
		return ErrEmptyPhraseSet
	}
	e.target = []rune(e.gen.Text(list, e.phraseCount))
	e.typed = newTyped(len(e.target))
	e.loadErr = nil
	return nil
}

// Reload fetches phrases for the current language and loads a fresh text.
// Fetch failures surface as ErrEmptyPhraseSet.
func (e *Engine) Reload(ctx context.Context) error {
	if e.status == StatusRunning {
		return ErrRunning
	}
	if e.source == nil {
		return e.failLoad(errors.New("no phrase source configured"))
	}
	list, err := e.source.Phrases(ctx, e.lang)
	if err != nil {
		return e.failLoad(err)
	}
	return e.LoadText(list)
}

func (e *Engine) failLoad(cause error) error {
	err := fmt.Errorf("%w: %v", ErrEmptyPhraseSet, cause)
	e.logger.Warn("failed to load phrases", "lang", e.lang, "error", cause)
	e.status = StatusIdle
	e.resetProgress()
	e.target = nil
	e.typed = nil
	e.loadErr = err
	e.notify()
	return err
}

// SetLang switches the phrase language and reloads the text.
func (e *Engine) SetLang(ctx context.Context, lang string) error {
	if e.status == StatusRunning {
		return ErrRunning
	}
	e.lang = phrases.NormalizeLang(lang)
	return e.Reload(ctx)
}

// Start begins a session from Idle or TimedUp. Starting a running session is a no-op.
func (e *Engine) Start() error {
	if e.status == StatusRunning {
		return nil
	}
	if len(e.target) == 0 {
		return ErrEmptyPhraseSet
	}
	e.resetProgress()
	e.status = StatusRunning
	e.run++
	e.logger.Debug("session started", "run", e.run, "duration", e.duration, "chars", len(e.target))
	e.notify()
	return nil
}

// Stop abandons a running session without recording a result and loads a
// fresh text. It is a no-op unless running.
func (e *Engine) Stop(ctx context.Context) error {
	if e.status != StatusRunning {
		return nil
	}
	e.status = StatusIdle
	e.run++
	e.resetProgress()
	e.logger.Debug("session stopped", "run", e.run)
	return e.Reload(ctx)
}

// Tick advances the countdown by one second. Ticks for any run other than
// the current running one are ignored. It reports whether the tick applied.
func (e *Engine) Tick(ctx context.Context, run uint64) bool {
	if e.status != StatusRunning || run != e.run {
		return false
	}
	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.finish(ctx)
		return true
	}
	e.notify()
	return true
}

// Finish ends a running session early, recording its result.
func (e *Engine) Finish(ctx context.Context) {
	if e.status != StatusRunning {
		return
	}
	e.finish(ctx)
}

func (e *Engine) finish(ctx context.Context) {
	result := model.Result{
		WPM:    wpm(e.netTyped()),
		Errors: e.errors,
		Date:   e.now().Format(resultDateLayout),
	}
	e.status = StatusTimedUp
	e.run++
	e.last = &result
	if e.recorder != nil {
		if err := e.recorder.Record(ctx, result); err != nil {
			e.logger.Error("failed to record result", "error", err)
		}
	}
	e.logger.Info("session finished", "wpm", result.WPM, "errors", result.Errors)
	e.notify()
}

// ReloadFinished loads a fresh text after a finished run, unless a newer run
// has started since.
func (e *Engine) ReloadFinished(ctx context.Context, run uint64) error {
	if e.status != StatusTimedUp || run != e.run {
		return nil
	}
	return e.Reload(ctx)
}

// HandleKey applies one key event. key follows browser naming: a single
// character, "Backspace", or a multi-character name for other keys. It
// reports whether the session changed.
func (e *Engine) HandleKey(key, code string) bool {
	if e.status != StatusRunning {
		return false
	}
	if code == CodeSpace {
		key = " "
	}
	if e.locked() && key != KeyBackspace {
		return false
	}
	if key == KeyBackspace {
		if e.cursor == 0 {
			return false
		}
		e.cursor--
		e.typed[e.cursor] = NoInput
		e.notify()
		return true
	}
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	if e.cursor >= len(e.target) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	e.typed[e.cursor] = r
	if !Matches(r, e.target[e.cursor]) {
		e.errors++
	}
	e.cursor++
	e.notify()
	return true
}

// locked reports whether the character before the cursor is an uncorrected mistake.
func (e *Engine) locked() bool {
	if e.cursor == 0 {
		return false
	}
	prev := e.typed[e.cursor-1]
	return prev != NoInput && !Matches(prev, e.target[e.cursor-1])
}

func (e *Engine) resetProgress() {
	e.cursor = 0
	e.errors = 0
	e.remaining = e.duration
	for i := range e.typed {
		e.typed[i] = NoInput
	}
}

func (e *Engine) netTyped() int {
	n := 0
	for _, r := range e.typed {
		if r != NoInput {
			n++
		}
	}
	return n
}

// Text returns the current target text.
func (e *Engine) Text() string {
	return string(e.target)
}

func wpm(chars int) int {
	return int(math.Round(float64(chars) / 5))
}

// Matches reports whether typed counts as a correct entry for expected.
// ASCII hyphen and em dash are interchangeable.
func Matches(typed, expected rune) bool {
	if typed == expected {
		return true
	}
	return isDash(typed) && isDash(expected)
}

func isDash(r rune) bool {
	return strings.ContainsRune(dashes, r)
}

const dashes = "-—"
