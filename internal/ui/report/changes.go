// Package report renders synchronization results and dependency listings for the terminal.
package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/ui/style"
)

const gap = "  "

// RenderChanges writes the rewritten specifiers grouped by file, in the order
// they were produced.
func RenderChanges(w io.Writer, changes []domain.Change) error {
	r := lipgloss.NewRenderer(w)
	var b strings.Builder

	if len(changes) == 0 {
		b.WriteString(r.NewStyle().Foreground(style.Green).Render(style.Check+" Already in sync") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	var sectionWidth, nameWidth, fromWidth int
	for _, c := range changes {
		sectionWidth = max(sectionWidth, len(c.Section))
		nameWidth = max(nameWidth, len(c.Name))
		fromWidth = max(fromWidth, len(c.From))
	}

	projectStyle := r.NewStyle().Foreground(style.Iris).Bold(true)
	sectionStyle := r.NewStyle().Foreground(style.Slate)
	toStyle := r.NewStyle().Foreground(style.Green)
	warnStyle := r.NewStyle().Foreground(style.Yellow)

	project := ""
	for i, c := range changes {
		if i == 0 || c.Project != project {
			project = c.Project
			b.WriteString(projectStyle.Render(project) + "\n")
		}

		b.WriteString(gap)
		b.WriteString(sectionStyle.Render(string(c.Section)) + pad(len(c.Section), sectionWidth) + gap)
		b.WriteString(c.Name + pad(len(c.Name), nameWidth) + gap)
		b.WriteString(c.From + pad(len(c.From), fromWidth))
		b.WriteString(" " + style.Arrow + " " + toStyle.Render(c.To))
		if c.OutOfRange {
			b.WriteString(gap + warnStyle.Render(style.Warning+" out of range"))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary writes the closing confirmation line.
func RenderSummary(w io.Writer, message string, dryRun bool) error {
	r := lipgloss.NewRenderer(w)
	line := r.NewStyle().Foreground(style.Green).Render(style.Check + " " + message)
	if dryRun {
		line = r.NewStyle().Foreground(style.Yellow).Render(style.Tilde + " Dry run, no files written")
	}
	_, err := io.WriteString(w, line+"\n")
	return err
}

func pad(length, width int) string {
	if length >= width {
		return ""
	}
	return strings.Repeat(" ", width-length)
}
