package insights

import (
	"strings"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// DefaultNewsLimit is how many headlines the news widget shows.
const DefaultNewsLimit = 6

// NewsView filters items to category (general shows every category) and to
// query over title and description, keeping at most limit items. limit <= 0
// means no limit.
func NewsView(items []entities.NewsItem, category, query string, limit int) []entities.NewsItem {
	q := strings.ToLower(query)
	out := []entities.NewsItem{}
	for _, item := range items {
		if category != string(entities.NewsCategoryGeneral) && item.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Title), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
