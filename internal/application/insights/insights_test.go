package insights

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

// Friday
var now = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func sampleTasks() []entities.Task {
	return []entities.Task{
		{ID: "1", Title: "Pay rent", Priority: entities.PriorityHigh, Category: "home", DueDate: "2024-03-15"},
		{ID: "2", Title: "Gym", Priority: entities.PriorityLow, Category: "health", DueDate: "2024-03-10"},
		{ID: "3", Title: "Report", Description: "Quarterly numbers", Priority: entities.PriorityHigh, Category: "work", DueDate: "2024-03-12", Completed: true},
		{ID: "4", Title: "Read book", Priority: entities.PriorityMedium, Category: "personal"},
		{ID: "5", Title: "Plan trip", Priority: entities.PriorityMedium, Category: "personal", DueDate: "2024-04-30"},
		{ID: "6", Title: "Taxes", Priority: entities.PriorityHigh, Category: "home", DueDate: "2024-03-20"},
	}
}

func ids(tasks []entities.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilterTasks(t *testing.T) {
	cases := []struct {
		name   string
		filter ports.TaskFilter
		want   []string
	}{
		{"no filter", ports.TaskFilter{}, []string{"1", "2", "3", "4", "5", "6"}},
		{"pending", ports.TaskFilter{Status: "pending"}, []string{"1", "2", "4", "5", "6"}},
		{"completed", ports.TaskFilter{Status: "completed"}, []string{"3"}},
		{"priority", ports.TaskFilter{Priority: "high"}, []string{"1", "3", "6"}},
		{"priority all", ports.TaskFilter{Priority: "all"}, []string{"1", "2", "3", "4", "5", "6"}},
		{"category", ports.TaskFilter{Category: "home"}, []string{"1", "6"}},
		{"search title", ports.TaskFilter{Search: "RENT"}, []string{"1"}},
		{"search description", ports.TaskFilter{Search: "quarterly"}, []string{"3"}},
		{"due today", ports.TaskFilter{Due: "today"}, []string{"1", "4"}},
		{"due week", ports.TaskFilter{Due: "week"}, []string{"1", "2", "3", "4", "6"}},
		{"overdue", ports.TaskFilter{Due: "overdue"}, []string{"2", "4"}},
		{"combined", ports.TaskFilter{Status: "pending", Priority: "high", Due: "week"}, []string{"1", "6"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterTasks(sampleTasks(), tc.filter, now)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestSortTasks(t *testing.T) {
	in := sampleTasks()
	got := SortTasks(in)

	// incomplete first; high before medium before low; earlier due first
	assert.Equal(t, []string{"1", "6", "4", "5", "2", "3"}, ids(got))
	assert.Equal(t, "1", in[0].ID)
	assert.Equal(t, "2", in[1].ID, "input left in place")
}

func TestSortTasksKeepsOrderWithoutDueDates(t *testing.T) {
	in := []entities.Task{
		{ID: "a", Priority: entities.PriorityMedium},
		{ID: "b", Priority: entities.PriorityMedium, DueDate: "2024-01-01"},
		{ID: "c", Priority: entities.PriorityMedium},
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(SortTasks(in)))
}

func TestStats(t *testing.T) {
	st := StatsAt(sampleTasks(), now)

	want := TaskStats{
		Total:          6,
		Completed:      1,
		Pending:        5,
		CompletionRate: 17,
		ByPriority:     map[string]int{"high": 3, "medium": 2, "low": 1},
		ByCategory:     map[string]int{"home": 2, "health": 1, "work": 1, "personal": 2},
		DueToday:       1,
		Overdue:        1,
		HighPending:    2,
	}
	assert.Empty(t, cmp.Diff(want, st))
}

func TestStatsCompletionRate(t *testing.T) {
	cases := []struct {
		done, total, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
	}
	for _, tc := range cases {
		tasks := make([]entities.Task, tc.total)
		for i := 0; i < tc.done; i++ {
			tasks[i].Completed = true
		}
		assert.Equal(t, tc.want, StatsAt(tasks, now).CompletionRate, "%d/%d", tc.done, tc.total)
	}
}

func TestReminders(t *testing.T) {
	got := Reminders(sampleTasks(), now, 7*24*time.Hour)

	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].Task.ID)
	assert.True(t, got[0].Overdue)
	assert.Equal(t, -5, got[0].DueIn)

	assert.Equal(t, "1", got[1].Task.ID)
	assert.False(t, got[1].Overdue)
	assert.Equal(t, 0, got[1].DueIn)

	assert.Equal(t, "6", got[2].Task.ID)
	assert.Equal(t, 5, got[2].DueIn)
}

func TestRemindersEmpty(t *testing.T) {
	got := Reminders(nil, now, time.Hour)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMonth(t *testing.T) {
	m, err := Month(2024, time.March, sampleTasks(), now)
	require.NoError(t, err)

	// March 1st 2024 was a Friday.
	assert.Equal(t, 5, m.LeadingDays)
	assert.Equal(t, 31, m.DaysInMonth)
	assert.Equal(t, "March", m.MonthName)
	assert.Len(t, m.Cells, 36)

	for i := 0; i < 5; i++ {
		assert.Zero(t, m.Cells[i].Day)
	}
	first := m.Cells[5]
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "2024-03-01", first.Date)

	fifteenth := m.Cells[5+14]
	assert.Equal(t, 15, fifteenth.Day)
	assert.True(t, fifteenth.Today)
	assert.Equal(t, []string{"1"}, ids(fifteenth.Tasks))
	assert.True(t, m.Cells[5+9].Past)
	assert.False(t, m.Cells[5+19].Past)

	rows := m.Rows()
	assert.Len(t, rows, 6)
	assert.Len(t, rows[5], 1)
}

func TestMonthLeapYear(t *testing.T) {
	m, err := Month(2024, time.February, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 29, m.DaysInMonth)
	assert.Equal(t, 4, m.LeadingDays)

	_, err = Month(2024, 13, nil, now)
	assert.Error(t, err)
}

func TestNewsView(t *testing.T) {
	items := []entities.NewsItem{
		{ID: "1", Title: "AI chips", Category: "technology"},
		{ID: "2", Title: "Markets rally", Category: "business", Description: "Stocks up on chip demand"},
		{ID: "3", Title: "Local news", Category: "general"},
		{ID: "4", Title: "Cloud outage", Category: "technology"},
		{ID: "5", Title: "Vaccine trial", Category: "health"},
		{ID: "6", Title: "Cup final", Category: "sports"},
		{ID: "7", Title: "Box office", Category: "entertainment"},
	}

	assert.Len(t, NewsView(items, "general", "", DefaultNewsLimit), 6, "general shows every category, capped")
	assert.Len(t, NewsView(items, "general", "", 0), 7)

	tech := NewsView(items, "technology", "", DefaultNewsLimit)
	assert.Equal(t, []string{"1", "4"}, newsIDs(tech))

	assert.Equal(t, []string{"1", "2"}, newsIDs(NewsView(items, "general", "CHIP", DefaultNewsLimit)))
	assert.Empty(t, NewsView(items, "politics", "", DefaultNewsLimit))
}

func newsIDs(items []entities.NewsItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestPortfolio(t *testing.T) {
	quotes := map[string]entities.StockData{
		"AAPL": {Symbol: "AAPL", Price: 200, ChangePercent: 1.2},
		"TSLA": {Symbol: "TSLA", Price: 100, ChangePercent: -2.5},
		"MSFT": {Symbol: "MSFT", Price: 400, ChangePercent: 0.4},
	}
	holdings := []ports.Holding{
		{Symbol: "aapl", Shares: 10, AvgPrice: 150},
		{Symbol: "TSLA", Shares: 5, AvgPrice: 120},
		{Symbol: "AAPL", Shares: 5, AvgPrice: 999},
		{Symbol: "NFLX", Shares: 1, AvgPrice: 10},
	}

	sum := Portfolio(holdings, quotes)

	require.Len(t, sum.Holdings, 3)
	assert.Equal(t, ports.Holding{Symbol: "AAPL", Shares: 15, AvgPrice: 150}, sum.Holdings[0])
	// AAPL 15*200 = 3000 (cost 2250); TSLA 5*100 = 500 (cost 600)
	assert.InDelta(t, 3500, sum.Value, 1e-9)
	assert.InDelta(t, 650, sum.GainLoss, 1e-9)
	assert.InDelta(t, 650.0/3500*100, sum.GainLossPercent, 1e-9)
	assert.Equal(t, []string{"NFLX"}, sum.Unpriced)

	require.Len(t, sum.TopGainers, 2)
	assert.Equal(t, "AAPL", sum.TopGainers[0].Symbol)
	require.Len(t, sum.TopLosers, 1)
	assert.Equal(t, "TSLA", sum.TopLosers[0].Symbol)
}

func TestPortfolioNothingPriced(t *testing.T) {
	sum := Portfolio([]ports.Holding{{Symbol: "X", Shares: 1, AvgPrice: 1}}, nil)
	assert.Zero(t, sum.Value)
	assert.Zero(t, sum.GainLossPercent)
}
