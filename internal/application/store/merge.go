package store

import (
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

func mergeTask(t entities.Task, p ports.TaskPatch) entities.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	return t
}

func mergeWidget(w entities.Widget, p ports.WidgetPatch) entities.Widget {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Position != nil {
		w.Position = *p.Position
	}
	if p.Size != nil {
		w.Size = *p.Size
	}
	if p.Visible != nil {
		w.Visible = *p.Visible
	}
	if p.Settings != nil {
		settings := make(map[string]any, len(p.Settings))
		for k, v := range p.Settings {
			settings[k] = v
		}
		w.Settings = settings
	}
	return w
}

func mergeSettings(u entities.UserSettings, p ports.SettingsPatch) entities.UserSettings {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Notifications != nil {
		u.Notifications = *p.Notifications
	}
	return u
}

func cloneWeather(data *entities.WeatherData) *entities.WeatherData {
	if data == nil {
		return nil
	}
	out := *data
	out.Forecast = append([]entities.ForecastDay(nil), data.Forecast...)
	return &out
}

func cloneNews(items []entities.NewsItem) []entities.NewsItem {
	out := make([]entities.NewsItem, len(items), max(len(items), 1))
	copy(out, items)
	return out
}
