// Package store owns the dashboard's session state. Every read returns a value
// that the store never writes again; every mutation publishes a new snapshot.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

const defaultWriteTimeout = 2 * time.Second

// state is immutable once published.
type state struct {
	darkMode             bool
	widgets              []entities.Widget
	tasks                []entities.Task
	weather              *entities.WeatherData
	news                 []entities.NewsItem
	selectedNewsCategory string
	watchlist            []string
	stockData            map[string]entities.StockData
	userSettings         *entities.UserSettings
	revisions            map[ports.Field]uint64
}

// Store implements ports.DashboardStore.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[state]

	storage      ports.Storage
	theme        ports.ThemeApplier
	observer     ports.StoreObserver
	logger       *logger.Logger
	now          func() time.Time
	newID        func() string
	writeTimeout time.Duration

	listeners  []*listener
	nextListen uint64
	tokens     map[string]uint64
}

var _ ports.DashboardStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for hydration and persistence warnings.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithThemeApplier mirrors dark mode onto a document root.
func WithThemeApplier(t ports.ThemeApplier) Option {
	return func(s *Store) { s.theme = t }
}

// WithObserver reports store activity, typically to metrics.
func WithObserver(o ports.StoreObserver) Option {
	return func(s *Store) { s.observer = o }
}

// WithClock replaces time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the task id source. The store still rejects
// ids already in use.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithWriteTimeout bounds each storage write.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// New builds a store from defaults, then hydrates persisted fields from
// storage. A nil storage keeps everything in memory.
func New(storage ports.Storage, opts ...Option) *Store {
	s := &Store{
		storage:      storage,
		logger:       logger.NewNop(),
		now:          time.Now,
		newID:        newTaskID,
		writeTimeout: defaultWriteTimeout,
		tokens:       make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("store")

	st := defaultState()
	s.hydrate(st)
	s.current.Store(st)

	if s.theme != nil {
		s.theme.ApplyTheme(st.darkMode)
	}
	return s
}

func defaultState() *state {
	settings := entities.DefaultUserSettings()
	revisions := make(map[ports.Field]uint64, len(ports.Fields))
	for _, f := range ports.Fields {
		revisions[f] = 0
	}
	return &state{
		widgets:              entities.DefaultWidgets(),
		tasks:                []entities.Task{},
		news:                 []entities.NewsItem{},
		selectedNewsCategory: string(entities.NewsCategoryGeneral),
		watchlist:            entities.DefaultWatchlist(),
		stockData:            map[string]entities.StockData{},
		userSettings:         &settings,
		revisions:            revisions,
	}
}

func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Store) load() *state {
	return s.current.Load()
}

// Accessors

// State returns every field at one instant.
func (s *Store) State() ports.Snapshot {
	st := s.load()
	revisions := make(map[ports.Field]uint64, len(st.revisions))
	for f, r := range st.revisions {
		revisions[f] = r
	}
	return ports.Snapshot{
		DarkMode:             st.darkMode,
		Widgets:              st.widgets,
		Tasks:                st.tasks,
		Weather:              st.weather,
		News:                 st.news,
		SelectedNewsCategory: st.selectedNewsCategory,
		Watchlist:            st.watchlist,
		StockData:            st.stockData,
		UserSettings:         *st.userSettings,
		Revisions:            revisions,
	}
}

// Revision returns how many times field has been mutated.
func (s *Store) Revision(field ports.Field) uint64 {
	return s.load().revisions[field]
}

func (s *Store) DarkMode() bool {
	return s.load().darkMode
}

func (s *Store) Widgets() []entities.Widget {
	return s.load().widgets
}

func (s *Store) Tasks() []entities.Task {
	return s.load().tasks
}

// Task looks up a single task by id.
func (s *Store) Task(id string) (entities.Task, bool) {
	for _, t := range s.load().tasks {
		if t.ID == id {
			return t, true
		}
	}
	return entities.Task{}, false
}

func (s *Store) Weather() *entities.WeatherData {
	return s.load().weather
}

func (s *Store) News() []entities.NewsItem {
	return s.load().news
}

func (s *Store) SelectedNewsCategory() string {
	return s.load().selectedNewsCategory
}

func (s *Store) Watchlist() []string {
	return s.load().watchlist
}

func (s *Store) StockData() map[string]entities.StockData {
	return s.load().stockData
}

func (s *Store) UserSettings() entities.UserSettings {
	return *s.load().userSettings
}

// UserSettingsRef returns the published settings value itself. A new pointer
// is published on every settings mutation.
func (s *Store) UserSettingsRef() *entities.UserSettings {
	return s.load().userSettings
}
