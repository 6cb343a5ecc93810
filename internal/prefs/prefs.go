// Package prefs persists the theme and locale settings.
package prefs

import (
	"context"
	"fmt"
)

// Storage keys.
const (
	ThemeKey  = "theme"
	LocaleKey = "locale"
)

// Theme is the colour scheme.
type Theme string

// Themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Locale is the UI language, which also selects the phrase language.
type Locale string

// Locales.
const (
	LocaleEN Locale = "en"
	LocaleUA Locale = "ua"
)

// KV is the storage preferences are kept in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other locale.
func (l Locale) Toggle() Locale {
	if l == LocaleEN {
		return LocaleUA
	}
	return LocaleEN
}

// ParseTheme maps unknown values to the dark theme.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// ParseLocale maps unknown values to English.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleUA {
		return LocaleUA
	}
	return LocaleEN
}

// LoadTheme reads the saved theme. A missing value yields the default; the
// default is also returned alongside any read error.
func LoadTheme(ctx context.Context, kv KV) (Theme, error) {
	v, _, err := kv.Get(ctx, ThemeKey)
	if err != nil {
		return ThemeDark, fmt.Errorf("failed to read theme: %w", err)
	}
	return ParseTheme(v), nil
}

// SaveTheme persists the theme.
func SaveTheme(ctx context.Context, kv KV, t Theme) error {
	if err := kv.Set(ctx, ThemeKey, string(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// LoadLocale reads the saved locale, falling back to English.
func LoadLocale(ctx context.Context, kv KV) (Locale, error) {
	v, _, err := kv.Get(ctx, LocaleKey)
	if err != nil {
		return LocaleEN, fmt.Errorf("failed to read locale: %w", err)
	}
	return ParseLocale(v), nil
}

// SaveLocale persists the locale.
func SaveLocale(ctx context.Context, kv KV, l Locale) error {
	if err := kv.Set(ctx, LocaleKey, string(l)); err != nil {
		return fmt.Errorf("failed to save locale: %w", err)
	}
	return nil
}
