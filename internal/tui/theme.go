package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typego/internal/history"
	"github.com/verte-zerg/typego/internal/prefs"
)

type palette struct {
	correct     lipgloss.Style
	incorrect   lipgloss.Style
	pending     lipgloss.Style
	currentWord lipgloss.Style
	muted       lipgloss.Style
	accent      lipgloss.Style
	logo        lipgloss.Style
	timer       lipgloss.Style
	timerPulse  lipgloss.Style
	errorText   lipgloss.Style
	timeUp      lipgloss.Style
	panel       lipgloss.Style
	medals      map[history.Medal]lipgloss.Style
	barColor    string
}

var (
	darkPalette = palette{
		correct:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		incorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		currentWord: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00BCD4")).Bold(true),
		logo:        lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
		timer:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
		timerPulse:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Bold(true),
		errorText:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		timeUp: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00BCD4")).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#00BCD4")),
		panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")),
		medals: map[history.Medal]lipgloss.Style{
			history.MedalGold:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")).Bold(true),
			history.MedalSilver: lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true),
			history.MedalBronze: lipgloss.NewStyle().Foreground(lipgloss.Color("#CD7F32")).Bold(true),
		},
		barColor: "#00BCD4",
	}

	lightPalette = palette{
		correct:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F")),
		incorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D32F2F")),
		pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")),
		currentWord: lipgloss.NewStyle().Foreground(lipgloss.Color("#8D6E00")),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#757575")),
		accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00838F")).Bold(true),
		logo:        lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F")).Bold(true),
		timer:       lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F")).Bold(true),
		timerPulse:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Bold(true),
		errorText:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D32F2F")),
		timeUp: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00838F")).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#00838F")),
		panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#BDBDBD")),
		medals: map[history.Medal]lipgloss.Style{
			history.MedalGold:   lipgloss.NewStyle().Foreground(lipgloss.Color("#B8860B")).Bold(true),
			history.MedalSilver: lipgloss.NewStyle().Foreground(lipgloss.Color("#707070")).Bold(true),
			history.MedalBronze: lipgloss.NewStyle().Foreground(lipgloss.Color("#8B4513")).Bold(true),
		},
		barColor: "#00838F",
	}
)

func paletteFor(t prefs.Theme) palette {
	if t == prefs.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

func (p palette) styleFor(c runeClass) lipgloss.Style {
	switch c {
	case classCorrect:
		return p.correct
	case classIncorrect, classWrongSpace:
		return p.incorrect
	case classCurrentWord:
		return p.currentWord
	default:
		return p.pending
	}
}

func (p palette) medal(m history.Medal) lipgloss.Style {
	if style, ok := p.medals[m]; ok {
		return style
	}
	return p.correct
}
