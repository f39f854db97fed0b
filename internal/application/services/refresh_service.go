package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// RefreshService pulls weather, news and quotes from the providers into the
// store. Every fetch runs under a fetch token so a slow, superseded fetch
// cannot overwrite a newer result.
type RefreshService struct {
	store    ports.DashboardStore
	weather  ports.WeatherProvider
	news     ports.NewsProvider
	quotes   ports.QuoteProvider
	interval time.Duration
	logger   *logger.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRefreshService creates a refresher that reloads quotes every interval once started.
func NewRefreshService(store ports.DashboardStore, weather ports.WeatherProvider, news ports.NewsProvider, quotes ports.QuoteProvider, interval time.Duration, logger *logger.Logger) *RefreshService {
	return &RefreshService{
		store:    store,
		weather:  weather,
		news:     news,
		quotes:   quotes,
		interval: interval,
		logger:   logger.WithComponent("refresh"),
	}
}

// RefreshWeather fetches weather for the user's location. applied is false
// when a newer fetch started meanwhile.
func (s *RefreshService) RefreshWeather(ctx context.Context) (applied bool, err error) {
	token := s.store.BeginFetch(ports.TopicWeather)
	data, err := s.weather.FetchWeather(ctx, s.store.UserSettings().Location)
	if err != nil {
		return false, fmt.Errorf("failed to fetch weather: %w", err)
	}
	applied = s.store.CommitWeather(token, data)
	s.logger.Debugw("Weather refreshed", "applied", applied, "seq", token.Seq)
	return applied, nil
}

// RefreshNews replaces the headline collection.
func (s *RefreshService) RefreshNews(ctx context.Context) (applied bool, err error) {
	token := s.store.BeginFetch(ports.TopicNews)
	items, err := s.news.FetchNews(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fetch news: %w", err)
	}
	applied = s.store.CommitNews(token, items)
	s.logger.Debugw("News refreshed", "applied", applied, "items", len(items))
	return applied, nil
}

// RefreshStocks fetches quotes for the current watchlist and returns how
// many were stored. Symbols the provider does not know are left untouched.
func (s *RefreshService) RefreshStocks(ctx context.Context) (int, error) {
	symbols := s.store.Watchlist()
	if len(symbols) == 0 {
		return 0, nil
	}

	tokens := make(map[string]ports.FetchToken, len(symbols))
	for _, sym := range symbols {
		tokens[sym] = s.store.BeginFetch(ports.StockTopic(sym))
	}

	quotes, err := s.quotes.FetchQuotes(ctx, symbols)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	stored := 0
	for _, sym := range symbols {
		quote, ok := quotes[sym]
		if !ok {
			continue
		}
		if s.store.CommitStockData(tokens[sym], sym, quote) {
			stored++
		}
	}
	s.logger.Debugw("Stocks refreshed", "requested", len(symbols), "stored", stored)
	return stored, nil
}

// RefreshAll runs the three refreshes concurrently and returns the first error.
func (s *RefreshService) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.RefreshWeather(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.RefreshNews(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.RefreshStocks(ctx)
		return err
	})
	return g.Wait()
}

// Start launches the background loop. With initial set, everything is
// refreshed once before the first tick. Calling Start twice is a no-op.
func (s *RefreshService) Start(ctx context.Context, initial bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(ctx, initial, s.done)
	s.logger.Infow("Refresh service started", "interval", s.interval.String())
}

// Stop cancels in-flight fetches and waits for the loop to exit.
func (s *RefreshService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("Refresh service stopped")
}

// IsRunning reports whether the loop is active.
func (s *RefreshService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *RefreshService) loop(ctx context.Context, initial bool, done chan struct{}) {
	defer close(done)

	if initial {
		if err := s.RefreshAll(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warnw("Initial refresh failed", "error", err)
		}
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RefreshStocks(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warnw("Stock refresh failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
