// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

// FormatTask formats a task line.
// Format: "{ID:>4}  [x] {TEXT}\n" (4-wide right-aligned id, two spaces, checkbox, text)
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", t.ID, Checkbox(t.Completed), NormalizeText(t.Text))
}

// FormatCounter formats the remaining-tasks line.
func FormatCounter(w io.Writer, active int) {
	fmt.Fprintln(w, Remaining(active))
}

// Checkbox renders a completion marker.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// Remaining returns "N task remaining" or "N tasks remaining".
func Remaining(active int) string {
	return fmt.Sprintf("%d %s remaining", active, Noun(active))
}

// Noun is "task" for exactly one and "tasks" otherwise.
func Noun(count int) string {
	if count == 1 {
		return "task"
	}
	return "tasks"
}

// NormalizeText makes task text safe for a single terminal line.
// - Newlines become spaces
// - Other control characters are dropped
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, text)
}
