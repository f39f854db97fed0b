package services

import (
	"fmt"
	"strings"

	"github.com/taskmaster/dashboard/internal/application/insights"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// DashboardService covers everything besides tasks: theme, widgets,
// settings, watchlist, news selection and portfolio valuation.
type DashboardService struct {
	store  ports.DashboardStore
	logger *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store ports.DashboardStore, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: logger.WithComponent("dashboard"),
	}
}

// State returns the whole store snapshot
func (s *DashboardService) State() ports.Snapshot {
	return s.store.State()
}

// ToggleTheme flips dark mode and returns the new value
func (s *DashboardService) ToggleTheme() bool {
	dark := s.store.ToggleDarkMode()
	s.logger.Infow("Theme toggled", "dark_mode", dark)
	return dark
}

// Widgets returns the widget layout
func (s *DashboardService) Widgets() []entities.Widget {
	return s.store.Widgets()
}

// UpdateWidget merges patch into one widget
func (s *DashboardService) UpdateWidget(id string, patch ports.WidgetPatch) (entities.Widget, error) {
	if patch.Type != nil && !patch.Type.IsValid() {
		return entities.Widget{}, fmt.Errorf("%w: %q", entities.ErrInvalidWidgetType, *patch.Type)
	}
	if !s.store.UpdateWidget(id, patch) {
		return entities.Widget{}, fmt.Errorf("%w: %s", entities.ErrWidgetNotFound, id)
	}
	for _, w := range s.store.Widgets() {
		if w.ID == id {
			return w, nil
		}
	}
	return entities.Widget{}, fmt.Errorf("%w: %s", entities.ErrWidgetNotFound, id)
}

// Settings returns the user profile
func (s *DashboardService) Settings() entities.UserSettings {
	return s.store.UserSettings()
}

// UpdateSettings merges patch into the profile
func (s *DashboardService) UpdateSettings(patch ports.SettingsPatch) entities.UserSettings {
	s.store.UpdateUserSettings(patch)
	s.logger.Infow("User settings updated")
	return s.store.UserSettings()
}

// Watchlist returns the tracked symbols
func (s *DashboardService) Watchlist() []string {
	return s.store.Watchlist()
}

// AddToWatchlist normalizes and appends a symbol. added is false when it
// was already tracked.
func (s *DashboardService) AddToWatchlist(req ports.WatchlistRequest) (symbol string, added bool, err error) {
	symbol = req.NormalizedSymbol()
	if symbol == "" || strings.ContainsAny(symbol, " \t/") {
		return "", false, fmt.Errorf("%w: %q", entities.ErrInvalidSymbol, req.Symbol)
	}
	added = s.store.AddToWatchlist(symbol)
	s.logger.Infow("Watchlist updated", "symbol", symbol, "added", added)
	return symbol, added, nil
}

// RemoveFromWatchlist drops a symbol
func (s *DashboardService) RemoveFromWatchlist(symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !s.store.RemoveFromWatchlist(symbol) {
		return fmt.Errorf("%w: %s", entities.ErrSymbolNotWatched, symbol)
	}
	s.logger.Infow("Symbol removed from watchlist", "symbol", symbol)
	return nil
}

// StockData returns quotes for watched symbols only, in watchlist order.
func (s *DashboardService) StockData() []entities.StockData {
	quotes := s.store.StockData()
	out := []entities.StockData{}
	for _, sym := range s.store.Watchlist() {
		if q, ok := quotes[sym]; ok {
			out = append(out, q)
		}
	}
	return out
}

// SetNewsCategory stores the active news filter
func (s *DashboardService) SetNewsCategory(category string) {
	s.store.SetSelectedNewsCategory(category)
}

// News returns headlines for the selected category matching query
func (s *DashboardService) News(query string, limit int) []entities.NewsItem {
	return insights.NewsView(s.store.News(), s.store.SelectedNewsCategory(), query, limit)
}

// Portfolio values holdings at the stored quotes
func (s *DashboardService) Portfolio(req ports.PortfolioRequest) insights.PortfolioSummary {
	return insights.Portfolio(req.Holdings, s.store.StockData())
}

// Subscribe forwards store change notifications to fn
func (s *DashboardService) Subscribe(fn func(ports.Change)) (unsubscribe func()) {
	return s.store.Subscribe(fn)
}

// Weather returns the stored weather payload, nil until the first load
func (s *DashboardService) Weather() *entities.WeatherData {
	return s.store.Weather()
}

// SetWeather replaces the weather payload
func (s *DashboardService) SetWeather(data *entities.WeatherData) {
	s.store.SetWeather(data)
}

// SetNews replaces the headline collection
func (s *DashboardService) SetNews(items []entities.NewsItem) {
	s.store.SetNews(items)
}

// SelectedNewsCategory returns the active news filter
func (s *DashboardService) SelectedNewsCategory() string {
	return s.store.SelectedNewsCategory()
}

// UpdateStockData stores a quote under the normalized symbol. The symbol
// does not have to be on the watchlist.
func (s *DashboardService) UpdateStockData(symbol string, data entities.StockData) (entities.StockData, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || strings.ContainsAny(symbol, " \t/") {
		return entities.StockData{}, fmt.Errorf("%w: %q", entities.ErrInvalidSymbol, symbol)
	}
	data.Symbol = symbol
	s.store.UpdateStockData(symbol, data)
	return data, nil
}
