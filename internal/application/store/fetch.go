package store

import (
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

// BeginFetch issues the next token for topic. Earlier tokens for the same
// topic can no longer commit.
func (s *Store) BeginFetch(topic string) ports.FetchToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[topic]++
	return ports.FetchToken{Topic: topic, Seq: s.tokens[topic]}
}

// latestLocked reports whether token is the newest issued for its topic.
func (s *Store) latestLocked(token ports.FetchToken) bool {
	return token.Seq != 0 && s.tokens[token.Topic] == token.Seq
}

func (s *Store) commit(token ports.FetchToken, op string, field ports.Field, fn func(next *state)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.latestLocked(token)
	if applied {
		s.applyLocked(op, field, fn)
	} else {
		s.logger.Debugw("Discarding stale fetch result", "topic", token.Topic, "seq", token.Seq, "latest", s.tokens[token.Topic])
	}
	if s.observer != nil {
		s.observer.FetchCommitted(token.Topic, applied)
	}
	return applied
}

// CommitWeather sets weather if token is still current for TopicWeather.
func (s *Store) CommitWeather(token ports.FetchToken, data *entities.WeatherData) bool {
	if token.Topic != ports.TopicWeather {
		return false
	}
	return s.commit(token, "setWeather", ports.FieldWeather, func(next *state) {
		next.weather = cloneWeather(data)
	})
}

// CommitNews replaces news if token is still current for TopicNews.
func (s *Store) CommitNews(token ports.FetchToken, items []entities.NewsItem) bool {
	if token.Topic != ports.TopicNews {
		return false
	}
	return s.commit(token, "setNews", ports.FieldNews, func(next *state) {
		next.news = cloneNews(items)
	})
}

// CommitStockData stores a quote if token is still current for the symbol's topic.
func (s *Store) CommitStockData(token ports.FetchToken, symbol string, data entities.StockData) bool {
	if token.Topic != ports.StockTopic(symbol) {
		return false
	}
	return s.commit(token, "updateStockData", ports.FieldStockData, func(next *state) {
		next.stockData = withQuote(next.stockData, symbol, data)
	})
}
