package stats

import (
	"fmt"
	"io"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/typego/internal/history"
	"github.com/verte-zerg/typego/internal/model"
)

const (
	sparkChars = " .:-=+*#%@"
	colorReset = "\x1b[0m"
)

var medalColors = map[history.Medal]string{
	history.MedalGold:   "\x1b[33m",
	history.MedalSilver: "\x1b[37m",
	history.MedalBronze: "\x1b[31m",
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderLeaderboard prints ranked results as a table. With useColor the
// medal rows are coloured.
func RenderLeaderboard(w io.Writer, ranked iter.Seq[history.Ranked], useColor bool) error {
	headers := []string{"#", "Medal", "Date", "WPM", "Errors", "Score"}
	var rows [][]string
	var medals []history.Medal
	for r := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank),
			r.Medal.String(),
			r.Result.Date,
			strconv.Itoa(r.Result.WPM),
			strconv.Itoa(r.Result.Errors),
			fmt.Sprintf("%.1f", r.Result.Score()),
		})
		medals = append(medals, r.Medal)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No history yet.")
		return err
	}

	if _, err := fmt.Fprintln(w, "Leaderboard"); err != nil {
		return err
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true}
	lines := formatTable(headers, rows, rightAlign)
	for i, line := range lines {
		if i > 0 && useColor {
			if code, ok := medalColors[medals[i-1]]; ok {
				line = code + line + colorReset
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderTrend prints a sparkline of WPM, oldest to newest, for a newest-first log.
func RenderTrend(w io.Writer, entries []model.Result) error {
	if len(entries) < 2 {
		return nil
	}
	values := make([]float64, 0, len(entries))
	best := 0
	total := 0
	for i := len(entries) - 1; i >= 0; i-- {
		values = append(values, float64(entries[i].WPM))
		best = max(best, entries[i].WPM)
		total += entries[i].WPM
	}
	avg := float64(total) / float64(len(entries))
	if _, err := fmt.Fprintf(w, "WPM trend  [%s]  avg %.1f  best %d\n", Sparkline(values), avg, best); err != nil {
		return err
	}
	return nil
}
