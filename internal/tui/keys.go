package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/typego/internal/i18n"
)

type keyMap struct {
	Start  key.Binding
	Stop   key.Binding
	Reload key.Binding
	Theme  key.Binding
	Lang   key.Binding
	Quit   key.Binding
}

func newKeyMap(locale string) keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T(locale, i18n.Start)),
		),
		Stop: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", i18n.T(locale, i18n.Stop)),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", i18n.T(locale, i18n.Theme)),
		),
		Lang: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", i18n.T(locale, i18n.Language)),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", i18n.T(locale, i18n.Quit)),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Theme, k.Lang, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Reload}}
}

// setRunning enables the bindings that apply while a session is or is not running.
func (k *keyMap) setRunning(running bool) {
	k.Start.SetEnabled(!running)
	k.Stop.SetEnabled(running)
	k.Lang.SetEnabled(!running)
	k.Reload.SetEnabled(!running)
}
