package insights

import (
	"fmt"
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// CalendarDay is one cell of the month grid. Blank cells pad the first week
// so day 1 lands under its weekday; they have Day == 0.
type CalendarDay struct {
	Day   int             `json:"day"`
	Date  string          `json:"date,omitempty"`
	Today bool            `json:"today"`
	Past  bool            `json:"past"`
	Tasks []entities.Task `json:"tasks,omitempty"`
}

// CalendarMonth is a Sunday-first month grid.
type CalendarMonth struct {
	Year        int           `json:"year"`
	Month       time.Month    `json:"month"`
	MonthName   string        `json:"monthName"`
	DaysInMonth int           `json:"daysInMonth"`
	LeadingDays int           `json:"leadingBlanks"`
	Cells       []CalendarDay `json:"cells"`
}

// Weekdays are the grid's column headings.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Month lays out year/month in now's location and attaches tasks by due date.
func Month(year int, month time.Month, tasks []entities.Task, now time.Time) (CalendarMonth, error) {
	if month < time.January || month > time.December {
		return CalendarMonth{}, fmt.Errorf("invalid month %d", month)
	}
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()
	leading := int(first.Weekday())
	today := entities.StartOfDay(now)

	byDate := make(map[string][]entities.Task)
	for _, t := range tasks {
		if t.DueDate != "" {
			byDate[t.DueDate] = append(byDate[t.DueDate], t)
		}
	}

	cells := make([]CalendarDay, leading, leading+days)
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)
		key := date.Format(entities.DueDateLayout)
		cells = append(cells, CalendarDay{
			Day:   d,
			Date:  key,
			Today: date.Equal(today),
			Past:  date.Before(today),
			Tasks: byDate[key],
		})
	}

	return CalendarMonth{
		Year:        year,
		Month:       month,
		MonthName:   month.String(),
		DaysInMonth: days,
		LeadingDays: leading,
		Cells:       cells,
	}, nil
}

// Rows splits the grid into weeks of seven cells; the last row may be short.
func (m CalendarMonth) Rows() [][]CalendarDay {
	var rows [][]CalendarDay
	for i := 0; i < len(m.Cells); i += 7 {
		end := i + 7
		if end > len(m.Cells) {
			end = len(m.Cells)
		}
		rows = append(rows, m.Cells[i:end])
	}
	return rows
}
