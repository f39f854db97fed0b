package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

// hydrate replaces defaults in st with whatever parses from storage. Missing,
// null, unreadable or corrupt values leave the default in place.
func (s *Store) hydrate(st *state) {
	if s.storage == nil {
		return
	}

	var dark *bool
	if s.read(ports.FieldDarkMode, &dark) && dark != nil {
		st.darkMode = *dark
	}

	var tasks []entities.Task
	if s.read(ports.FieldTasks, &tasks) && tasks != nil {
		st.tasks = tasks
	}

	var settings *entities.UserSettings
	if s.read(ports.FieldUserSettings, &settings) && settings != nil {
		st.userSettings = settings
	}

	var watchlist []string
	if s.read(ports.FieldWatchlist, &watchlist) && watchlist != nil {
		st.watchlist = watchlist
	}
}

func (s *Store) read(field ports.Field, dst any) bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	key := string(field)
	raw, err := s.storage.Get(ctx, key)
	if errors.Is(err, entities.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		s.logger.Warnw("Failed to read persisted field, using default", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warnw("Persisted field is corrupt, using default", "key", key, "error", err)
		return false
	}
	return true
}

// persist writes the field's full value. Failures are logged and reported to
// the observer, never returned.
func (s *Store) persist(field ports.Field, st *state) {
	if s.storage == nil {
		return
	}

	var value any
	switch field {
	case ports.FieldDarkMode:
		value = st.darkMode
	case ports.FieldTasks:
		value = st.tasks
	case ports.FieldUserSettings:
		value = st.userSettings
	case ports.FieldWatchlist:
		value = st.watchlist
	default:
		return
	}

	key := string(field)
	start := time.Now()
	err := s.write(key, value)
	took := time.Since(start)

	s.logger.LogStorageWrite(s.storage.Driver(), key, float64(took.Microseconds())/1000, err)
	if s.observer != nil {
		s.observer.PersistFinished(key, took, err)
	}
}

func (s *Store) write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	return s.storage.Set(ctx, key, string(data))
}
