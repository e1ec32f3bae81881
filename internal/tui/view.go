package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/output"
	"todo/internal/task"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	removingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Faint(true)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	activeFilter  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true).Underline(true)
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todo"))
	b.WriteString("  ")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(mutedStyle.Render("a add • / focus input"))
	}
	b.WriteString("\n\n")

	b.WriteString(frameStyle.Render(m.renderTasks()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderFilters() string {
	parts := make([]string, 0, len(task.Filters))
	for i, f := range task.Filters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == m.store.Filter() {
			label = activeFilter.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderTasks() string {
	rows := m.visible()
	if len(rows) == 0 {
		return mutedStyle.Render(emptyState(m.store.Filter()))
	}

	lines := make([]string, 0, len(rows))
	for i, t := range rows {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}

		if m.mode == modeEdit && t.ID == m.editID {
			lines = append(lines, pointer+m.input.View())
			continue
		}

		text := output.NormalizeText(t.Text)
		line := output.Checkbox(t.Completed) + " " + text
		switch {
		case m.removing[t.ID]:
			line = removingStyle.Render(line)
		case t.Completed:
			line = doneStyle.Render(line)
		}
		lines = append(lines, pointer+line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.mode == modeConfirmClear {
		return promptStyle.Render(fmt.Sprintf("Delete %d completed task(s)? (y/n)", m.pending))
	}

	parts := []string{output.Remaining(m.store.ActiveCount())}
	if m.store.HasCompleted() {
		parts = append(parts, "c clear completed")
	}
	switch m.mode {
	case modeAdd:
		parts = append(parts, "enter add • esc done")
	case modeEdit:
		parts = append(parts, "enter save • esc cancel")
	default:
		parts = append(parts, "space toggle • e edit • d delete • f filter • q quit")
	}
	footer := mutedStyle.Render(strings.Join(parts, " • "))
	if m.status != "" {
		footer = promptStyle.Render(m.status) + "\n" + footer
	}
	return footer
}

func emptyState(f task.Filter) string {
	switch f {
	case task.FilterActive:
		return "Nothing left to do."
	case task.FilterCompleted:
		return "No completed tasks yet."
	default:
		return "No tasks yet. Press 'a' to add one."
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
