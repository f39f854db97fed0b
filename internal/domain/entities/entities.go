package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrWidgetNotFound       = errors.New("widget not found")
	ErrSymbolNotWatched     = errors.New("symbol not in watchlist")
	ErrKeyNotFound          = errors.New("storage key not found")
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	ErrInvalidDueDate       = errors.New("invalid due date")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidSymbol        = errors.New("invalid ticker symbol")
	ErrInvalidWidgetType    = errors.New("invalid widget type")
)

// DueDateLayout is the calendar date format used for Task.DueDate.
const DueDateLayout = "2006-01-02"

// Enums and types
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type WidgetType string

const (
	WidgetTypeWeather   WidgetType = "weather"
	WidgetTypeTasks     WidgetType = "tasks"
	WidgetTypeNews      WidgetType = "news"
	WidgetTypeStocks    WidgetType = "stocks"
	WidgetTypeCalendar  WidgetType = "calendar"
	WidgetTypeAnalytics WidgetType = "analytics"
)

type NewsCategory string

const (
	NewsCategoryGeneral       NewsCategory = "general"
	NewsCategoryTechnology    NewsCategory = "technology"
	NewsCategoryBusiness      NewsCategory = "business"
	NewsCategorySports        NewsCategory = "sports"
	NewsCategoryEntertainment NewsCategory = "entertainment"
	NewsCategoryHealth        NewsCategory = "health"
)

// NewsCategories lists the categories the news widget offers, in display order.
var NewsCategories = []NewsCategory{
	NewsCategoryGeneral,
	NewsCategoryTechnology,
	NewsCategoryBusiness,
	NewsCategorySports,
	NewsCategoryEntertainment,
	NewsCategoryHealth,
}

// Task represents a to-do item owned by the dashboard
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskDraft holds the caller-supplied fields of a new task. ID and CreatedAt
// are assigned by the store.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Completed   bool     `json:"completed"`
	DueDate     string   `json:"dueDate,omitempty"`
}

// Position is a widget's cell in the dashboard grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a widget's span in grid cells
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Widget represents a unit of dashboard content
type Widget struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     WidgetType     `json:"type"`
	Position Position       `json:"position"`
	Size     Size           `json:"size"`
	Visible  bool           `json:"visible"`
	Settings map[string]any `json:"settings,omitempty"`
}

// StockData is a quote snapshot for one ticker
type StockData struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        int64   `json:"volume"`
}

// CurrentWeather is the present conditions block of WeatherData
type CurrentWeather struct {
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"windSpeed"`
	Location  string  `json:"location"`
}

// ForecastDay is one entry of the daily forecast
type ForecastDay struct {
	Date      string  `json:"date"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
}

// WeatherData is a complete weather payload. Forecast starts with today.
type WeatherData struct {
	Current  CurrentWeather `json:"current"`
	Forecast []ForecastDay  `json:"forecast"`
}

// NewsItem is a single headline
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// UserSettings is the profile shown in the header and settings pages
type UserSettings struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Location      string `json:"location"`
	Notifications bool   `json:"notifications"`
}

// Defaults

// DefaultWatchlist is the ticker list a fresh dashboard tracks.
func DefaultWatchlist() []string {
	return []string{"AAPL", "GOOGL", "MSFT", "TSLA"}
}

// DefaultUserSettings returns the profile used before the user edits anything.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Name:          "John Doe",
		Email:         "john.doe@example.com",
		Location:      "New York, NY",
		Notifications: true,
	}
}

// DefaultWidgets returns one visible widget per widget type.
func DefaultWidgets() []Widget {
	return []Widget{
		{ID: "weather", Name: "Weather", Type: WidgetTypeWeather, Position: Position{X: 0, Y: 0}, Size: Size{Width: 2, Height: 1}, Visible: true},
		{ID: "tasks", Name: "Tasks", Type: WidgetTypeTasks, Position: Position{X: 2, Y: 0}, Size: Size{Width: 2, Height: 1}, Visible: true},
		{ID: "news", Name: "News", Type: WidgetTypeNews, Position: Position{X: 0, Y: 1}, Size: Size{Width: 3, Height: 1}, Visible: true},
		{ID: "stocks", Name: "Stocks", Type: WidgetTypeStocks, Position: Position{X: 3, Y: 1}, Size: Size{Width: 1, Height: 1}, Visible: true},
		{ID: "calendar", Name: "Calendar", Type: WidgetTypeCalendar, Position: Position{X: 0, Y: 2}, Size: Size{Width: 2, Height: 1}, Visible: true},
		{ID: "analytics", Name: "Analytics", Type: WidgetTypeAnalytics, Position: Position{X: 2, Y: 2}, Size: Size{Width: 2, Height: 1}, Visible: true},
	}
}

// Business logic methods for Task

// Due parses DueDate in loc. ok is false when the task has no due date.
func (t *Task) Due(loc *time.Location) (due time.Time, ok bool, err error) {
	if t.DueDate == "" {
		return time.Time{}, false, nil
	}
	due, err = time.ParseInLocation(DueDateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false, ErrInvalidDueDate
	}
	return due, true, nil
}

// IsOverdue reports whether the task is incomplete and its due day is before now's day.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok, err := t.Due(now.Location())
	if err != nil || !ok {
		return false
	}
	return due.Before(StartOfDay(now))
}

// Matches reports whether query appears in the title or description, ignoring case.
func (t *Task) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// Business logic methods for StockData

// IsUp reports a non-negative change.
func (s StockData) IsUp() bool {
	return s.Change >= 0
}

// Utility methods

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Rank orders priorities high > medium > low; unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (wt WidgetType) IsValid() bool {
	switch wt {
	case WidgetTypeWeather, WidgetTypeTasks, WidgetTypeNews, WidgetTypeStocks, WidgetTypeCalendar, WidgetTypeAnalytics:
		return true
	default:
		return false
	}
}

func (nc NewsCategory) IsValid() bool {
	for _, c := range NewsCategories {
		if c == nc {
			return true
		}
	}
	return false
}
