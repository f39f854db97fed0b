package ports

import (
	"context"
	"strings"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// Field names one slice of dashboard state. Persisted fields use the field
// name as their storage key.
type Field string

const (
	FieldDarkMode             Field = "darkMode"
	FieldWidgets              Field = "widgets"
	FieldTasks                Field = "tasks"
	FieldWeather              Field = "weather"
	FieldNews                 Field = "news"
	FieldSelectedNewsCategory Field = "selectedNewsCategory"
	FieldWatchlist            Field = "watchlist"
	FieldStockData            Field = "stockData"
	FieldUserSettings         Field = "userSettings"
)

// Fields lists every state field.
var Fields = []Field{
	FieldDarkMode,
	FieldWidgets,
	FieldTasks,
	FieldWeather,
	FieldNews,
	FieldSelectedNewsCategory,
	FieldWatchlist,
	FieldStockData,
	FieldUserSettings,
}

// Persisted reports whether the field is written to durable storage.
func (f Field) Persisted() bool {
	switch f {
	case FieldDarkMode, FieldTasks, FieldUserSettings, FieldWatchlist:
		return true
	default:
		return false
	}
}

// Change is delivered to subscribers after every mutation.
type Change struct {
	Field    Field  `json:"field"`
	Op       string `json:"op"`
	Revision uint64 `json:"revision"`
}

// Fetch topics
const (
	TopicWeather = "weather"
	TopicNews    = "news"
)

// StockTopic is the fetch topic for one ticker.
func StockTopic(symbol string) string {
	return "stock:" + symbol
}

// FetchToken identifies one fetch sequence. Only the latest token issued for
// a topic may commit.
type FetchToken struct {
	Topic string `json:"topic"`
	Seq   uint64 `json:"seq"`
}

// Snapshot is a read-only view of the whole store at one instant.
type Snapshot struct {
	DarkMode             bool                          `json:"darkMode"`
	Widgets              []entities.Widget             `json:"widgets"`
	Tasks                []entities.Task               `json:"tasks"`
	Weather              *entities.WeatherData         `json:"weather"`
	News                 []entities.NewsItem           `json:"news"`
	SelectedNewsCategory string                        `json:"selectedNewsCategory"`
	Watchlist            []string                      `json:"watchlist"`
	StockData            map[string]entities.StockData `json:"stockData"`
	UserSettings         entities.UserSettings         `json:"userSettings"`
	Revisions            map[Field]uint64              `json:"revisions"`
}

// DashboardStore is the surface every consumer of dashboard state uses.
type DashboardStore interface {
	State() Snapshot
	Revision(field Field) uint64
	DarkMode() bool
	Widgets() []entities.Widget
	Tasks() []entities.Task
	Task(id string) (entities.Task, bool)
	Weather() *entities.WeatherData
	News() []entities.NewsItem
	SelectedNewsCategory() string
	Watchlist() []string
	StockData() map[string]entities.StockData
	UserSettings() entities.UserSettings

	ToggleDarkMode() bool
	UpdateWidget(id string, patch WidgetPatch) bool
	AddTask(draft entities.TaskDraft) entities.Task
	UpdateTask(id string, patch TaskPatch) bool
	ToggleTask(id string) bool
	DeleteTask(id string) bool
	SetWeather(data *entities.WeatherData)
	SetNews(items []entities.NewsItem)
	SetSelectedNewsCategory(category string)
	AddToWatchlist(symbol string) bool
	RemoveFromWatchlist(symbol string) bool
	UpdateStockData(symbol string, data entities.StockData)
	UpdateUserSettings(patch SettingsPatch)

	Subscribe(fn func(Change)) (unsubscribe func())

	BeginFetch(topic string) FetchToken
	CommitWeather(token FetchToken, data *entities.WeatherData) bool
	CommitNews(token FetchToken, items []entities.NewsItem) bool
	CommitStockData(token FetchToken, symbol string, data entities.StockData) bool
}

// Simulated data providers

// WeatherProvider returns a weather payload for a location.
type WeatherProvider interface {
	FetchWeather(ctx context.Context, location string) (*entities.WeatherData, error)
}

// NewsProvider returns the full headline set.
type NewsProvider interface {
	FetchNews(ctx context.Context) ([]entities.NewsItem, error)
}

// QuoteProvider returns quotes for the symbols it knows; unknown symbols are omitted.
type QuoteProvider interface {
	FetchQuotes(ctx context.Context, symbols []string) (map[string]entities.StockData, error)
}

// Request/Response Types

// TaskPatch is a partial task update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string            `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	Priority    *entities.Priority `json:"priority,omitempty"`
	Category    *string            `json:"category,omitempty" validate:"omitempty,max=50"`
	Completed   *bool              `json:"completed,omitempty"`
	DueDate     *string            `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// WidgetPatch is a partial widget update. A non-nil Settings replaces the
// whole settings map.
type WidgetPatch struct {
	Name     *string              `json:"name,omitempty" validate:"omitempty,max=100"`
	Type     *entities.WidgetType `json:"type,omitempty"`
	Position *entities.Position   `json:"position,omitempty"`
	Size     *entities.Size       `json:"size,omitempty"`
	Visible  *bool                `json:"visible,omitempty"`
	Settings map[string]any       `json:"settings,omitempty"`
}

// SettingsPatch is a partial user settings update.
type SettingsPatch struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Location      *string `json:"location,omitempty" validate:"omitempty,max=100"`
	Notifications *bool   `json:"notifications,omitempty"`
}

// CreateTaskRequest is the HTTP body for adding a task. Empty priority and
// category fall back to the add-task form defaults.
type CreateTaskRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"max=2000"`
	Priority    entities.Priority `json:"priority"`
	Category    string            `json:"category" validate:"max=50"`
	Completed   bool              `json:"completed"`
	DueDate     string            `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// Draft converts the request into a store draft.
func (r CreateTaskRequest) Draft() entities.TaskDraft {
	priority := r.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	category := r.Category
	if category == "" {
		category = "general"
	}
	return entities.TaskDraft{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Priority:    priority,
		Category:    category,
		Completed:   r.Completed,
		DueDate:     r.DueDate,
	}
}

type WatchlistRequest struct {
	Symbol string `json:"symbol" validate:"required,max=10"`
}

// NormalizedSymbol upper-cases and trims the symbol the way the stock widget does.
func (r WatchlistRequest) NormalizedSymbol() string {
	return strings.ToUpper(strings.TrimSpace(r.Symbol))
}

type NewsCategoryRequest struct {
	Category string `json:"category" validate:"required,max=50"`
}

// Holding is one portfolio position.
type Holding struct {
	Symbol   string  `json:"symbol" validate:"required,max=10"`
	Shares   float64 `json:"shares" validate:"gt=0"`
	AvgPrice float64 `json:"avgPrice" validate:"gt=0"`
}

type PortfolioRequest struct {
	Holdings []Holding `json:"holdings" validate:"dive"`
}

// TaskFilter narrows a task listing. Empty fields mean "all".
type TaskFilter struct {
	Status   string `query:"status" validate:"omitempty,oneof=all pending completed"`
	Priority string `query:"priority"`
	Category string `query:"category"`
	Due      string `query:"due" validate:"omitempty,oneof=all today week overdue"`
	Search   string `query:"q"`
}
