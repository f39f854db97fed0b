package feeds

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

//go:embed sample/headlines.rss
var headlinesRSS string

const extPrefix = "dash"

// News parses headlines from an RSS document. The newest item is reported
// as published an hour before now, older items keep their spacing.
type News struct {
	delay  time.Duration
	feed   string
	parser *gofeed.Parser
	now    func() time.Time
}

var _ ports.NewsProvider = (*News)(nil)

// NewNews serves the bundled sample feed.
func NewNews(delay time.Duration) *News {
	return NewNewsFromFeed(headlinesRSS, delay)
}

// NewNewsFromFeed serves items from an RSS or Atom document.
func NewNewsFromFeed(feed string, delay time.Duration) *News {
	return &News{
		delay:  delay,
		feed:   feed,
		parser: gofeed.NewParser(),
		now:    time.Now,
	}
}

func (n *News) FetchNews(ctx context.Context) ([]entities.NewsItem, error) {
	if err := wait(ctx, n.delay); err != nil {
		return nil, err
	}

	feed, err := n.parser.ParseString(n.feed)
	if err != nil {
		return nil, fmt.Errorf("parse news feed: %w", err)
	}

	items := make([]entities.NewsItem, 0, len(feed.Items))
	var newest time.Time
	for _, it := range feed.Items {
		item := entities.NewsItem{
			ID:          it.GUID,
			Title:       strings.TrimSpace(it.Title),
			Description: strings.TrimSpace(it.Description),
			URL:         it.Link,
			Source:      extension(it, "source"),
			Category:    string(entities.NewsCategoryGeneral),
		}
		if item.ID == "" {
			item.ID = it.Link
		}
		if item.Source == "" {
			item.Source = feed.Title
		}
		if len(it.Categories) > 0 {
			item.Category = strings.ToLower(it.Categories[0])
		}
		for _, enc := range it.Enclosures {
			if strings.HasPrefix(enc.Type, "image/") {
				item.ImageURL = enc.URL
				break
			}
		}
		if it.PublishedParsed != nil {
			item.PublishedAt = *it.PublishedParsed
			if item.PublishedAt.After(newest) {
				newest = item.PublishedAt
			}
		}
		items = append(items, item)
	}

	shift := n.now().Add(-time.Hour).Sub(newest)
	for i := range items {
		if items[i].PublishedAt.IsZero() {
			items[i].PublishedAt = n.now()
			continue
		}
		items[i].PublishedAt = items[i].PublishedAt.Add(shift).UTC()
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	return items, nil
}

func extension(it *gofeed.Item, name string) string {
	ext, ok := it.Extensions[extPrefix]
	if !ok {
		return ""
	}
	values := ext[name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}
