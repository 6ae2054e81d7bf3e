package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"task-tracker/services/taskctl/core"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	doingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	todoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// RenderTasks renders the task list as a flat table.
func RenderTasks(tasks []core.Task) string {
	if len(tasks) == 0 {
		return idStyle.Render("no tasks") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %-3s %-40s %-7s %-10s %s",
		"ID", "", "TITLE", "STATE", "SPENT", "CREATED")))
	sb.WriteString("\n")

	for _, t := range tasks {
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}

		title := t.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}

		row := fmt.Sprintf("%-10s %-3s %-40s %-7s %-10s %s",
			ShortID(t.ID),
			mark,
			title,
			t.State,
			FormatSeconds(t.TimeSpent),
			t.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
		sb.WriteString(stateStyle(t.State).Render(row))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderTask renders a single task with full detail.
func RenderTask(t core.Task) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(t.Title) + "\n")
	sb.WriteString(idStyle.Render("id:          "+t.ID) + "\n")
	if t.Description != "" {
		sb.WriteString("description: " + t.Description + "\n")
	}
	sb.WriteString("state:       " + string(t.State) + "\n")
	sb.WriteString("spent:       " + timeStyle.Render(FormatSeconds(t.TimeSpent)) + "\n")
	if t.StartedAt != nil {
		sb.WriteString("session:     running since " + t.StartedAt.Local().Format("15:04:05") + "\n")
	}
	sb.WriteString(idStyle.Render("created:     "+t.CreatedAt.Local().Format("2006-01-02 15:04")) + "\n")
	return sb.String()
}

func stateStyle(state core.TaskState) lipgloss.Style {
	switch state {
	case core.StateDone:
		return doneStyle
	case core.StateDoing:
		return doingStyle
	default:
		return todoStyle
	}
}

// ShortID keeps listings readable; commands accept the prefix back.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatSeconds renders accumulated time as 1h02m03s, trimming leading
// zero units.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
