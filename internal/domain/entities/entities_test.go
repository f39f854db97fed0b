package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWidgetsCoverEveryType(t *testing.T) {
	widgets := DefaultWidgets()
	require.Len(t, widgets, 6)

	seen := make(map[WidgetType]bool)
	ids := make(map[string]bool)
	for _, w := range widgets {
		assert.True(t, w.Type.IsValid(), "widget %s has invalid type %q", w.ID, w.Type)
		assert.True(t, w.Visible)
		assert.False(t, seen[w.Type], "duplicate widget type %s", w.Type)
		assert.False(t, ids[w.ID], "duplicate widget id %s", w.ID)
		seen[w.Type] = true
		ids[w.ID] = true
	}
}

func TestDefaultsAreFreshCopies(t *testing.T) {
	a := DefaultWatchlist()
	a[0] = "ZZZZ"
	assert.Equal(t, "AAPL", DefaultWatchlist()[0])

	w := DefaultWidgets()
	w[0].Visible = false
	assert.True(t, DefaultWidgets()[0].Visible)
}

func TestPriorityRankAndValidity(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, 0, Priority("urgent").Rank())
	assert.False(t, Priority("urgent").IsValid())
	assert.True(t, PriorityLow.IsValid())
}

func TestNewsCategoryIsValid(t *testing.T) {
	assert.True(t, NewsCategoryHealth.IsValid())
	assert.False(t, NewsCategory("weather").IsValid())
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{}, false},
		{"due yesterday", Task{DueDate: "2024-06-14"}, true},
		{"due today", Task{DueDate: "2024-06-15"}, false},
		{"completed", Task{DueDate: "2024-06-01", Completed: true}, false},
		{"unparseable", Task{DueDate: "next week"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
		})
	}
}

func TestTaskDue(t *testing.T) {
	task := Task{DueDate: "bogus"}
	_, ok, err := task.Due(time.UTC)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestTaskMatches(t *testing.T) {
	task := Task{Title: "Buy milk", Description: "Whole, not skim"}
	assert.True(t, task.Matches(""))
	assert.True(t, task.Matches("MILK"))
	assert.True(t, task.Matches("skim"))
	assert.False(t, task.Matches("bread"))
}
