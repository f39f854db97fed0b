package insights

import (
	"sort"
	"strings"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

// PortfolioSummary values holdings at the store's current quotes.
type PortfolioSummary struct {
	Holdings        []ports.Holding      `json:"holdings"`
	Value           float64              `json:"value"`
	GainLoss        float64              `json:"gainLoss"`
	GainLossPercent float64              `json:"gainLossPercent"`
	Unpriced        []string             `json:"unpriced,omitempty"`
	TopGainers      []entities.StockData `json:"topGainers"`
	TopLosers       []entities.StockData `json:"topLosers"`
}

// MergeHoldings upper-cases symbols and folds repeated symbols into one
// holding, adding shares and keeping the first average price.
func MergeHoldings(holdings []ports.Holding) []ports.Holding {
	out := make([]ports.Holding, 0, len(holdings))
	index := make(map[string]int, len(holdings))
	for _, h := range holdings {
		h.Symbol = strings.ToUpper(strings.TrimSpace(h.Symbol))
		if i, ok := index[h.Symbol]; ok {
			out[i].Shares += h.Shares
			continue
		}
		index[h.Symbol] = len(out)
		out = append(out, h)
	}
	return out
}

// Portfolio sums value and gain/loss over holdings that have a quote. The
// percentage is relative to current value, zero when nothing is priced.
func Portfolio(holdings []ports.Holding, quotes map[string]entities.StockData) PortfolioSummary {
	merged := MergeHoldings(holdings)
	sum := PortfolioSummary{Holdings: merged}

	for _, h := range merged {
		q, ok := quotes[h.Symbol]
		if !ok {
			sum.Unpriced = append(sum.Unpriced, h.Symbol)
			continue
		}
		current := q.Price * h.Shares
		sum.Value += current
		sum.GainLoss += current - h.AvgPrice*h.Shares
	}
	if sum.Value > 0 {
		sum.GainLossPercent = sum.GainLoss / sum.Value * 100
	}

	sum.TopGainers, sum.TopLosers = TopMovers(quotes, 3)
	return sum
}

// TopMovers returns up to n quotes with the largest positive and negative
// percent change.
func TopMovers(quotes map[string]entities.StockData, n int) (gainers, losers []entities.StockData) {
	gainers = []entities.StockData{}
	losers = []entities.StockData{}
	for _, q := range quotes {
		switch {
		case q.ChangePercent > 0:
			gainers = append(gainers, q)
		case q.ChangePercent < 0:
			losers = append(losers, q)
		}
	}
	sort.Slice(gainers, func(i, j int) bool {
		if gainers[i].ChangePercent != gainers[j].ChangePercent {
			return gainers[i].ChangePercent > gainers[j].ChangePercent
		}
		return gainers[i].Symbol < gainers[j].Symbol
	})
	sort.Slice(losers, func(i, j int) bool {
		if losers[i].ChangePercent != losers[j].ChangePercent {
			return losers[i].ChangePercent < losers[j].ChangePercent
		}
		return losers[i].Symbol < losers[j].Symbol
	})
	if len(gainers) > n {
		gainers = gainers[:n]
	}
	if len(losers) > n {
		losers = losers[:n]
	}
	return gainers, losers
}
