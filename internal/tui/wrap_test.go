package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typego/internal/engine"
)

func typedRunes(target, input string) []rune {
	typed := make([]rune, len([]rune(target)))
	for i := range typed {
		typed[i] = engine.NoInput
	}
	for i, r := range []rune(input) {
		typed[i] = r
	}
	return typed
}

func classes(target, input string, cursor int) []runeClass {
	t := []rune(target)
	typed := typedRunes(target, input)
	word := wordForCursor(findWords(t), cursor)
	out := make([]runeClass, len(t))
	for i := range t {
		out[i] = classify(t, typed, i, word)
	}
	return out
}

func TestClassifyCorrectAndCursorWord(t *testing.T) {
	got := classes("ab", "a", 1)
	if got[0] != classCorrect {
		t.Fatalf("expected correct class for first rune, got %v", got[0])
	}
	if got[1] != classCurrentWord {
		t.Fatalf("expected current word class for second rune, got %v", got[1])
	}
}

func TestClassifyKeepsTargetOnMistype(t *testing.T) {
	got := classes("ab", "ax", 2)
	if got[1] != classIncorrect {
		t.Fatalf("expected incorrect class, got %v", got[1])
	}
	runes := buildStyledRunes(darkPalette, []rune("ab"), typedRunes("ab", "ax"), 2)
	if !strings.Contains(runes[1].s, "b") {
		t.Fatalf("expected target rune to stay visible, got %q", runes[1].s)
	}
}

func TestClassifyDashEquivalence(t *testing.T) {
	got := classes("a—b", "a-", 2)
	if got[1] != classCorrect {
		t.Fatalf("expected hyphen to match em dash, got %v", got[1])
	}
}

func TestClassifyWordHighlighting(t *testing.T) {
	got := classes("one two", "o", 1)
	want := []runeClass{classCorrect, classCurrentWord, classCurrentWord, classPending, classPending, classPending, classPending}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := buildStyledRunes(darkPalette, []rune("a b"), typedRunes("a b", "ax"), 2)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if !strings.Contains(runes[1].s, string(wrongSpaceMark)) {
		t.Fatalf("expected dot for wrong space, got %q", runes[1].s)
	}
	if !runes[1].isSpace {
		t.Fatalf("expected wrapped space to stay a break point")
	}
}

func TestWordForCursorPastEnd(t *testing.T) {
	words := findWords([]rune("ab cd"))
	if w := wordForCursor(words, 5); w != nil {
		t.Fatalf("expected no current word past the end, got %+v", w)
	}
	if w := wordForCursor(words, 2); w == nil || w.start != 3 {
		t.Fatalf("expected next word from a space, got %+v", w)
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	target := "hello big world"
	runes := buildStyledRunes(darkPalette, []rune(target), typedRunes(target, ""), -1)
	out := wrapStyledRunes(runes, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "hello") || !strings.Contains(lines[1], "world") {
		t.Fatalf("unexpected wrapping: %q", out)
	}
}

func TestWrapStyledRunesLongWord(t *testing.T) {
	target := "abcdefghij"
	runes := buildStyledRunes(darkPalette, []rune(target), typedRunes(target, ""), -1)
	out := wrapStyledRunes(runes, 4)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("expected 2 line breaks, got %d: %q", got, out)
	}
}
