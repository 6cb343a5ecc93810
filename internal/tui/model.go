// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typego/internal/engine"
	"github.com/verte-zerg/typego/internal/history"
	"github.com/verte-zerg/typego/internal/i18n"
	"github.com/verte-zerg/typego/internal/prefs"
)

const (
	pulseThreshold = 10
	sidePanelWidth = 46
	minSideBySide  = 100
)

type tickMsg struct {
	run uint64
}

type reloadMsg struct {
	run uint64
}

// Model implements the Bubble Tea typing UI. It renders engine snapshots and
// turns key presses into engine calls.
type Model struct {
	engine  *engine.Engine
	history *history.Store
	kv      prefs.KV
	logger  *slog.Logger

	theme   prefs.Theme
	locale  prefs.Locale
	palette palette
	keys    keyMap
	help    help.Model
	bar     progress.Model

	snap        engine.Snapshot
	unsubscribe func()

	width  int
	height int
}

// NewModel constructs a typing TUI model around an engine that already has
// its first text loaded (or a load error recorded).
func NewModel(eng *engine.Engine, hist *history.Store, kv prefs.KV, theme prefs.Theme, locale prefs.Locale, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		engine:  eng,
		history: hist,
		kv:      kv,
		logger:  logger,
		help:    help.New(),
	}
	m.applyTheme(theme)
	m.applyLocale(locale)
	m.snap = eng.Snapshot()
	m.unsubscribe = eng.Subscribe(func(s engine.Snapshot) {
		m.snap = s
	})
	m.keys.setRunning(m.snap.Status == engine.StatusRunning)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Close detaches the model from the engine.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		m.keys.setRunning(m.snap.Status == engine.StatusRunning)
	}()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = m.mainWidth()
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case reloadMsg:
		if err := m.engine.ReloadFinished(context.Background(), msg.run); err != nil {
			m.logger.Warn("failed to reload text", "error", err)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if !m.engine.Tick(context.Background(), msg.run) {
		return nil
	}
	switch m.engine.Status() {
	case engine.StatusRunning:
		return tickCmd(msg.run)
	case engine.StatusTimedUp:
		return reloadCmd(m.engine.Run())
	default:
		return nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme(ctx)
		return m, nil
	case key.Matches(msg, m.keys.Stop):
		if err := m.engine.Stop(ctx); err != nil {
			m.logger.Warn("failed to reload text after stop", "error", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Start):
		if err := m.engine.Start(); err != nil {
			m.logger.Warn("cannot start session", "error", err)
			return m, nil
		}
		return m, tickCmd(m.engine.Run())
	case key.Matches(msg, m.keys.Lang):
		m.toggleLocale(ctx)
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if err := m.engine.Reload(ctx); err != nil {
			m.logger.Warn("failed to reload text", "error", err)
		}
		return m, nil
	}
	for _, k := range keyEvents(msg) {
		m.engine.HandleKey(k, "")
	}
	return m, nil
}

// keyEvents converts a terminal key press into engine key names.
func keyEvents(msg tea.KeyMsg) []string {
	if msg.Alt {
		return []string{msg.String()}
	}
	switch msg.Type {
	case tea.KeyBackspace:
		return []string{engine.KeyBackspace}
	case tea.KeySpace:
		return []string{" "}
	case tea.KeyRunes:
		out := make([]string, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, string(r))
		}
		return out
	default:
		return []string{msg.String()}
	}
}

func (m *Model) toggleTheme(ctx context.Context) {
	m.applyTheme(m.theme.Toggle())
	if err := prefs.SaveTheme(ctx, m.kv, m.theme); err != nil {
		m.logger.Warn("failed to save theme", "error", err)
	}
}

func (m *Model) toggleLocale(ctx context.Context) {
	next := m.locale.Toggle()
	if err := m.engine.SetLang(ctx, string(next)); err != nil {
		if errors.Is(err, engine.ErrRunning) {
			return
		}
		m.logger.Warn("failed to load phrases for locale", "locale", next, "error", err)
	}
	m.applyLocale(next)
	if err := prefs.SaveLocale(ctx, m.kv, m.locale); err != nil {
		m.logger.Warn("failed to save locale", "error", err)
	}
}

func (m *Model) applyTheme(t prefs.Theme) {
	m.theme = t
	m.palette = paletteFor(t)
	width := m.bar.Width
	m.bar = progress.New(progress.WithSolidFill(m.palette.barColor), progress.WithoutPercentage())
	if width > 0 {
		m.bar.Width = width
	}
}

func (m *Model) applyLocale(l prefs.Locale) {
	m.locale = l
	m.keys = newKeyMap(string(l))
}

func (m *Model) t(key string) string {
	return i18n.T(string(m.locale), key)
}

func tickCmd(run uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{run: run}
	})
}

func reloadCmd(run uint64) tea.Cmd {
	return tea.Tick(engine.ReloadDelay, func(time.Time) tea.Msg {
		return reloadMsg{run: run}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		m.renderText(),
		"",
		m.renderTimer(),
		m.renderTimeUp(),
	)
	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStats(),
		m.renderHistory(),
	)

	var body string
	if m.width >= minSideBySide {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.mainWidth()).MarginRight(2).Render(main),
			side,
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, main, "", side)
	}
	footer := m.help.View(m.keys)
	out := lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
	if m.width == 0 || m.height == 0 {
		return out
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out)
}

func (m *Model) mainWidth() int {
	if m.width >= minSideBySide {
		return max(m.width-sidePanelWidth-6, 20)
	}
	return max(m.width-4, 20)
}

func (m *Model) renderHeader() string {
	logo := m.palette.logo.Render("Type") + m.palette.accent.Render("Go")
	meta := m.palette.muted.Render(fmt.Sprintf("  %s · %s", m.theme, strings.ToUpper(string(m.locale))))
	return logo + meta
}

func (m *Model) renderText() string {
	if m.snap.LoadErr != nil || len(m.snap.Target) == 0 {
		return m.palette.errorText.Render(m.t(i18n.LoadError)) + "\n" +
			m.palette.muted.Render(m.keys.Reload.Help().Key+" "+m.keys.Reload.Help().Desc)
	}
	cursorIndex := -1
	if m.snap.Cursor < len(m.snap.Target) {
		cursorIndex = m.snap.Cursor
	}
	styled := buildStyledRunes(m.palette, m.snap.Target, m.snap.Typed, cursorIndex)
	return wrapStyledRunes(styled, m.mainWidth())
}

func (m *Model) renderTimer() string {
	fraction := 0.0
	if m.snap.Duration > 0 {
		fraction = float64(m.snap.TimeRemaining) / float64(m.snap.Duration)
	}
	style := m.palette.timer
	if m.snap.Status == engine.StatusRunning && m.snap.TimeRemaining <= pulseThreshold {
		style = m.palette.timerPulse
	}
	return m.bar.ViewAs(fraction) + " " + style.Render(formatTime(m.snap.TimeRemaining))
}

func (m *Model) renderTimeUp() string {
	if m.snap.Status != engine.StatusTimedUp {
		return ""
	}
	return "\n" + m.palette.timeUp.Render(m.t(i18n.TimeUp))
}

func (m *Model) renderStats() string {
	speed := fmt.Sprintf("%s %s %s",
		m.palette.muted.Render(m.t(i18n.Speed)),
		m.palette.correct.Bold(true).Render(fmt.Sprintf("%d", m.snap.WPM())),
		m.palette.muted.Render(m.t(i18n.WPM)),
	)
	errs := fmt.Sprintf("%s %s",
		m.palette.muted.Render(m.t(i18n.Errors)),
		m.palette.incorrect.Bold(true).Render(fmt.Sprintf("%d", m.snap.Errors)),
	)
	return m.palette.panel.Width(sidePanelWidth).Render(speed + "   " + errs)
}

func (m *Model) renderHistory() string {
	lines := []string{m.palette.accent.Render(m.t(i18n.History))}
	if m.history == nil || m.history.Len() == 0 {
		lines = append(lines, m.palette.muted.Render(m.t(i18n.NoHistory)))
	} else {
		for r := range m.history.Ranked() {
			line := fmt.Sprintf("%s  %s: %d %s, %s: %d",
				r.Result.Date,
				m.t(i18n.Speed), r.Result.WPM, m.t(i18n.WPM),
				m.t(i18n.Errors), r.Result.Errors,
			)
			lines = append(lines, m.palette.medal(r.Medal).Render(line))
		}
	}
	return m.palette.panel.Width(sidePanelWidth).Render(strings.Join(lines, "\n"))
}

func formatTime(seconds int) string {
	return fmt.Sprintf("%02d", seconds)
}
