package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster/dashboard/internal/application/insights"
	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// palette follows the dashboard's dark-mode flag so the CLI matches the UI.
type palette struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
	Done     lipgloss.Style
	Overdue  lipgloss.Style
	Today    lipgloss.Style
	Busy     lipgloss.Style
	Cell     lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
}

func newPalette(dark bool) palette {
	fg, muted, accent := lipgloss.Color("#101F38"), lipgloss.Color("#6b7280"), lipgloss.Color("#2563eb")
	if dark {
		fg, muted, accent = lipgloss.Color("#f2f2f2"), lipgloss.Color("#9ca3af"), lipgloss.Color("#8BC34A")
	}
	red, amber, green := lipgloss.Color("#e53935"), lipgloss.Color("#FFC107"), lipgloss.Color("#8BC34A")

	return palette{
		Title:    lipgloss.NewStyle().Foreground(fg).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		High:     lipgloss.NewStyle().Foreground(red),
		Medium:   lipgloss.NewStyle().Foreground(amber),
		Low:      lipgloss.NewStyle().Foreground(green),
		Done:     lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Overdue:  lipgloss.NewStyle().Foreground(red).Bold(true),
		Today:    lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
		Busy:     lipgloss.NewStyle().Foreground(accent),
		Cell:     lipgloss.NewStyle().Width(4).Align(lipgloss.Right),
		Positive: lipgloss.NewStyle().Foreground(green),
		Negative: lipgloss.NewStyle().Foreground(red),
	}
}

func (p palette) priority(pr entities.Priority) lipgloss.Style {
	switch pr {
	case entities.PriorityHigh:
		return p.High
	case entities.PriorityLow:
		return p.Low
	default:
		return p.Medium
	}
}

func renderTasks(w io.Writer, p palette, tasks []entities.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, p.Muted.Render("No tasks"))
		return
	}
	for _, t := range tasks {
		box := "[ ]"
		title := t.Title
		if t.Completed {
			box = "[x]"
			title = p.Done.Render(title)
		}

		line := fmt.Sprintf("%s %s  %s  %s", box, title,
			p.priority(t.Priority).Render(string(t.Priority)),
			p.Muted.Render(t.Category))
		if t.DueDate != "" {
			due := "due " + t.DueDate
			if t.IsOverdue(now) {
				due = p.Overdue.Render(due + " (overdue)")
			}
			line += "  " + due
		}
		fmt.Fprintf(w, "%s  %s\n", line, p.Muted.Render(t.ID))
	}
}

func renderStats(w io.Writer, p palette, s insights.TaskStats) {
	fmt.Fprintln(w, p.Title.Render("Tasks"))
	fmt.Fprintf(w, "  total      %d\n", s.Total)
	fmt.Fprintf(w, "  completed  %d (%d%%)\n", s.Completed, s.CompletionRate)
	fmt.Fprintf(w, "  pending    %d\n", s.Pending)
	fmt.Fprintf(w, "  due today  %d\n", s.DueToday)
	fmt.Fprintf(w, "  overdue    %d\n", s.Overdue)
	for _, pr := range []entities.Priority{entities.PriorityHigh, entities.PriorityMedium, entities.PriorityLow} {
		fmt.Fprintf(w, "  %-10s %d\n", p.priority(pr).Render(string(pr)), s.ByPriority[string(pr)])
	}
}

func renderCalendar(w io.Writer, p palette, m insights.CalendarMonth) {
	fmt.Fprintln(w, p.Title.Render(fmt.Sprintf("%s %d", m.MonthName, m.Year)))

	header := make([]string, len(insights.Weekdays))
	for i, d := range insights.Weekdays {
		header[i] = p.Cell.Render(p.Muted.Render(d))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	var due []entities.Task
	for _, row := range m.Rows() {
		cells := make([]string, len(row))
		for i, day := range row {
			if day.Day == 0 {
				cells[i] = p.Cell.Render("")
				continue
			}
			label := fmt.Sprint(day.Day)
			if len(day.Tasks) > 0 {
				label += "*"
				due = append(due, day.Tasks...)
			}
			switch {
			case day.Today:
				label = p.Today.Render(label)
			case len(day.Tasks) > 0:
				label = p.Busy.Render(label)
			}
			cells[i] = p.Cell.Render(label)
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if len(due) > 0 {
		fmt.Fprintln(w)
		for _, t := range due {
			fmt.Fprintf(w, "  %s  %s\n", t.DueDate, t.Title)
		}
	}
}

func renderWatchlist(w io.Writer, p palette, symbols []string, quotes map[string]entities.StockData) {
	if len(symbols) == 0 {
		fmt.Fprintln(w, p.Muted.Render("Watchlist is empty"))
		return
	}
	for _, sym := range symbols {
		q, ok := quotes[sym]
		if !ok {
			fmt.Fprintf(w, "%-6s %s\n", sym, p.Muted.Render("no quote"))
			continue
		}
		style := p.Negative
		if q.IsUp() {
			style = p.Positive
		}
		change := style.Render(fmt.Sprintf("%+.2f (%+.2f%%)", q.Change, q.ChangePercent))
		fmt.Fprintf(w, "%-6s %10.2f  %s\n", sym, q.Price, change)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
