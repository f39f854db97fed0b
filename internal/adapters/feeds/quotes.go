package feeds

import (
	"context"
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

// Quotes serves sample quotes for a small fixed set of tickers.
type Quotes struct {
	delay time.Duration
}

var _ ports.QuoteProvider = (*Quotes)(nil)

func NewQuotes(delay time.Duration) *Quotes {
	return &Quotes{delay: delay}
}

var sampleQuotes = map[string]entities.StockData{
	"AAPL":  {Symbol: "AAPL", Name: "Apple Inc.", Price: 185.92, Change: 2.45, ChangePercent: 1.34, High: 187.50, Low: 183.20, Volume: 45678900},
	"GOOGL": {Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 142.87, Change: -1.23, ChangePercent: -0.85, High: 145.20, Low: 141.50, Volume: 32456700},
	"MSFT":  {Symbol: "MSFT", Name: "Microsoft Corporation", Price: 378.91, Change: 5.67, ChangePercent: 1.52, High: 380.15, Low: 375.30, Volume: 28934500},
	"TSLA":  {Symbol: "TSLA", Name: "Tesla, Inc.", Price: 208.44, Change: -3.21, ChangePercent: -1.52, High: 212.80, Low: 207.10, Volume: 67890400},
}

// FetchQuotes returns quotes for the known symbols; the rest are omitted.
func (q *Quotes) FetchQuotes(ctx context.Context, symbols []string) (map[string]entities.StockData, error) {
	if err := wait(ctx, q.delay); err != nil {
		return nil, err
	}
	out := make(map[string]entities.StockData, len(symbols))
	for _, s := range symbols {
		if quote, ok := sampleQuotes[s]; ok {
			out[s] = quote
		}
	}
	return out, nil
}
