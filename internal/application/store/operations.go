package store

import (
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

// apply runs fn against a shallow copy of the current state, bumps the
// field's revision, publishes the copy, persists it and notifies listeners.
// fn must replace (never modify) the field it touches.
func (s *Store) apply(op string, field ports.Field, fn func(next *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(op, field, fn)
}

func (s *Store) applyLocked(op string, field ports.Field, fn func(next *state)) {
	prev := s.load()
	next := *prev
	next.revisions = make(map[ports.Field]uint64, len(prev.revisions))
	for f, r := range prev.revisions {
		next.revisions[f] = r
	}

	fn(&next)

	next.revisions[field]++
	s.current.Store(&next)

	if field.Persisted() {
		s.persist(field, &next)
	}
	if s.observer != nil {
		s.observer.MutationApplied(op)
	}
	s.notify(ports.Change{Field: field, Op: op, Revision: next.revisions[field]})
}

// ToggleDarkMode flips the theme and returns the new value.
func (s *Store) ToggleDarkMode() bool {
	var dark bool
	s.apply("toggleDarkMode", ports.FieldDarkMode, func(next *state) {
		next.darkMode = !next.darkMode
		dark = next.darkMode
		if s.theme != nil {
			s.theme.ApplyTheme(dark)
		}
	})
	return dark
}

// UpdateWidget merges patch into the widget with id. Returns false when no
// widget matched; the widget list is still republished.
func (s *Store) UpdateWidget(id string, patch ports.WidgetPatch) bool {
	found := false
	s.apply("updateWidget", ports.FieldWidgets, func(next *state) {
		widgets := make([]entities.Widget, len(next.widgets), max(len(next.widgets), 1))
		for i, w := range next.widgets {
			if w.ID == id {
				w = mergeWidget(w, patch)
				found = true
			}
			widgets[i] = w
		}
		next.widgets = widgets
	})
	return found
}

// AddTask assigns an id and creation time to draft and appends it.
func (s *Store) AddTask(draft entities.TaskDraft) entities.Task {
	var task entities.Task
	s.apply("addTask", ports.FieldTasks, func(next *state) {
		task = entities.Task{
			ID:          s.uniqueTaskID(next.tasks),
			Title:       draft.Title,
			Description: draft.Description,
			Priority:    draft.Priority,
			Category:    draft.Category,
			Completed:   draft.Completed,
			DueDate:     draft.DueDate,
			CreatedAt:   s.now(),
		}
		tasks := make([]entities.Task, len(next.tasks), len(next.tasks)+1)
		copy(tasks, next.tasks)
		next.tasks = append(tasks, task)
	})
	return task
}

func (s *Store) uniqueTaskID(existing []entities.Task) string {
	taken := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		taken[t.ID] = struct{}{}
	}
	for {
		id := s.newID()
		if _, dup := taken[id]; !dup && id != "" {
			return id
		}
		s.logger.Debugw("Task id collision, regenerating", "id", id)
	}
}

// UpdateTask merges patch into the task with id.
func (s *Store) UpdateTask(id string, patch ports.TaskPatch) bool {
	found := false
	s.apply("updateTask", ports.FieldTasks, func(next *state) {
		tasks := make([]entities.Task, len(next.tasks), max(len(next.tasks), 1))
		for i, t := range next.tasks {
			if t.ID == id {
				t = mergeTask(t, patch)
				found = true
			}
			tasks[i] = t
		}
		next.tasks = tasks
	})
	return found
}

// ToggleTask flips the completed flag of the task with id in a single
// mutation, so concurrent toggles never read the same prior value.
func (s *Store) ToggleTask(id string) bool {
	found := false
	s.apply("toggleTask", ports.FieldTasks, func(next *state) {
		tasks := make([]entities.Task, len(next.tasks), max(len(next.tasks), 1))
		for i, t := range next.tasks {
			if t.ID == id {
				completed := !t.Completed
				t = mergeTask(t, ports.TaskPatch{Completed: &completed})
				found = true
			}
			tasks[i] = t
		}
		next.tasks = tasks
	})
	return found
}

// DeleteTask removes the task with id.
func (s *Store) DeleteTask(id string) bool {
	found := false
	s.apply("deleteTask", ports.FieldTasks, func(next *state) {
		tasks := make([]entities.Task, 0, max(len(next.tasks), 1))
		for _, t := range next.tasks {
			if t.ID == id {
				found = true
				continue
			}
			tasks = append(tasks, t)
		}
		next.tasks = tasks
	})
	return found
}

// SetWeather replaces the weather payload; nil clears it.
func (s *Store) SetWeather(data *entities.WeatherData) {
	s.apply("setWeather", ports.FieldWeather, func(next *state) {
		next.weather = cloneWeather(data)
	})
}

// SetNews replaces the headline collection.
func (s *Store) SetNews(items []entities.NewsItem) {
	s.apply("setNews", ports.FieldNews, func(next *state) {
		next.news = cloneNews(items)
	})
}

// SetSelectedNewsCategory stores category as given.
func (s *Store) SetSelectedNewsCategory(category string) {
	s.apply("setSelectedNewsCategory", ports.FieldSelectedNewsCategory, func(next *state) {
		next.selectedNewsCategory = category
	})
}

// AddToWatchlist appends symbol unless the exact string is already present.
// Returns true when the symbol was appended.
func (s *Store) AddToWatchlist(symbol string) bool {
	added := false
	s.apply("addToWatchlist", ports.FieldWatchlist, func(next *state) {
		list := make([]string, len(next.watchlist), len(next.watchlist)+1)
		copy(list, next.watchlist)
		for _, existing := range list {
			if existing == symbol {
				next.watchlist = list
				return
			}
		}
		next.watchlist = append(list, symbol)
		added = true
	})
	return added
}

// RemoveFromWatchlist drops every occurrence of symbol. Cached stock data
// for the symbol is kept.
func (s *Store) RemoveFromWatchlist(symbol string) bool {
	removed := false
	s.apply("removeFromWatchlist", ports.FieldWatchlist, func(next *state) {
		list := make([]string, 0, max(len(next.watchlist), 1))
		for _, existing := range next.watchlist {
			if existing == symbol {
				removed = true
				continue
			}
			list = append(list, existing)
		}
		next.watchlist = list
	})
	return removed
}

// UpdateStockData inserts or replaces the quote for symbol.
func (s *Store) UpdateStockData(symbol string, data entities.StockData) {
	s.apply("updateStockData", ports.FieldStockData, func(next *state) {
		next.stockData = withQuote(next.stockData, symbol, data)
	})
}

// UpdateUserSettings merges patch into the profile.
func (s *Store) UpdateUserSettings(patch ports.SettingsPatch) {
	s.apply("updateUserSettings", ports.FieldUserSettings, func(next *state) {
		merged := mergeSettings(*next.userSettings, patch)
		next.userSettings = &merged
	})
}

func withQuote(current map[string]entities.StockData, symbol string, data entities.StockData) map[string]entities.StockData {
	quotes := make(map[string]entities.StockData, len(current)+1)
	for k, v := range current {
		quotes[k] = v
	}
	quotes[symbol] = data
	return quotes
}
