package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Date", "WPM"}
	rows := [][]string{
		{"1", "2026-01-02 10:00:00", "42"},
		{"10", "yesterday", "7"},
	}
	rightAlign := map[int]bool{0: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " # Date                WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1 2026-01-02 10:00:00  42" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10 yesterday             7" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Ім'я", "N"}, [][]string{{"Помилки", "3"}}, map[int]bool{1: true})
	if lines[0] != "Ім'я    N" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
}
