package insights

import (
	"sort"
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// Reminder is an incomplete task whose due day falls inside the reminder window.
type Reminder struct {
	Task    entities.Task `json:"task"`
	DueIn   int           `json:"dueInDays"`
	Overdue bool          `json:"overdue"`
}

// Reminders returns incomplete tasks due on or before now+window, overdue
// ones included, soonest first. Tasks without a due date never remind.
func Reminders(tasks []entities.Task, now time.Time, window time.Duration) []Reminder {
	today := entities.StartOfDay(now)
	horizon := entities.StartOfDay(now.Add(window))

	out := []Reminder{}
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok, err := t.Due(now.Location())
		if err != nil || !ok || due.After(horizon) {
			continue
		}
		out = append(out, Reminder{
			Task:    t,
			DueIn:   daysBetween(today, due),
			Overdue: due.Before(today),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueIn < out[j].DueIn
	})
	return out
}

// daysBetween counts calendar days from a to b, both at midnight.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
