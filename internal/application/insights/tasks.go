// Package insights derives the views the dashboard widgets show from store
// state. Nothing here mutates its input.
package insights

import (
	"sort"
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

const week = 7 * 24 * time.Hour

// FilterTasks applies f to tasks as of now. A due-window filter only
// excludes tasks that carry a due date.
func FilterTasks(tasks []entities.Task, f ports.TaskFilter, now time.Time) []entities.Task {
	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(t, f, now) {
			out = append(out, t)
		}
	}
	return out
}

func matchesFilter(t entities.Task, f ports.TaskFilter, now time.Time) bool {
	if !t.Matches(f.Search) {
		return false
	}

	switch f.Status {
	case "pending":
		if t.Completed {
			return false
		}
	case "completed":
		if !t.Completed {
			return false
		}
	}

	if f.Priority != "" && f.Priority != "all" && string(t.Priority) != f.Priority {
		return false
	}
	if f.Category != "" && f.Category != "all" && t.Category != f.Category {
		return false
	}

	if f.Due == "" || f.Due == "all" {
		return true
	}
	due, ok, err := t.Due(now.Location())
	if err != nil || !ok {
		return true
	}
	today := entities.StartOfDay(now)
	switch f.Due {
	case "today":
		return due.Equal(today)
	case "week":
		return !due.After(today.Add(week))
	case "overdue":
		return due.Before(today) && !t.Completed
	}
	return true
}

// SortTasks orders incomplete tasks first, then by priority high to low,
// then by due date ascending. The sort is stable and returns a new slice.
func SortTasks(tasks []entities.Task) []entities.Task {
	out := append([]entities.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if a.DueDate != "" && b.DueDate != "" {
			return a.DueDate < b.DueDate
		}
		return false
	})
	return out
}

// TaskStats summarizes the task collection for the analytics widget.
type TaskStats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	CompletionRate int            `json:"completionRate"`
	ByPriority     map[string]int `json:"byPriority"`
	ByCategory     map[string]int `json:"byCategory"`
	DueToday       int            `json:"dueToday"`
	Overdue        int            `json:"overdue"`
	HighPending    int            `json:"highPriorityPending"`
}

// Stats counts tasks as of the current day.
func Stats(tasks []entities.Task) TaskStats {
	return StatsAt(tasks, time.Now())
}

// StatsAt counts tasks as of now. CompletionRate is a rounded percentage.
func StatsAt(tasks []entities.Task, now time.Time) TaskStats {
	st := TaskStats{
		Total: len(tasks),
		ByPriority: map[string]int{
			string(entities.PriorityHigh):   0,
			string(entities.PriorityMedium): 0,
			string(entities.PriorityLow):    0,
		},
		ByCategory: map[string]int{},
	}
	today := entities.StartOfDay(now)

	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			st.Completed++
		} else if t.Priority == entities.PriorityHigh {
			st.HighPending++
		}
		if t.Priority.IsValid() {
			st.ByPriority[string(t.Priority)]++
		}
		st.ByCategory[t.Category]++

		if due, ok, err := t.Due(now.Location()); err == nil && ok && due.Equal(today) {
			st.DueToday++
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
	}

	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = (st.Completed*200 + st.Total) / (st.Total * 2)
	}
	return st
}
