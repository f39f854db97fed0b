package feeds

import (
	"context"
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

// Weather serves a fixed five-day sample for any location.
type Weather struct {
	delay time.Duration
	now   func() time.Time
}

var _ ports.WeatherProvider = (*Weather)(nil)

// NewWeather returns a provider that waits delay before answering.
func NewWeather(delay time.Duration) *Weather {
	return &Weather{delay: delay, now: time.Now}
}

var sampleForecast = []struct {
	high, low float64
	condition string
	icon      string
}{
	{75, 65, "Partly Cloudy", "partly-cloudy"},
	{78, 68, "Sunny", "sunny"},
	{73, 63, "Rainy", "rainy"},
	{70, 60, "Cloudy", "cloudy"},
	{76, 66, "Sunny", "sunny"},
}

// FetchWeather returns current conditions and a forecast starting today.
// An empty location reports the sample city.
func (w *Weather) FetchWeather(ctx context.Context, location string) (*entities.WeatherData, error) {
	if err := wait(ctx, w.delay); err != nil {
		return nil, err
	}
	if location == "" {
		location = entities.DefaultUserSettings().Location
	}

	today := entities.StartOfDay(w.now())
	forecast := make([]entities.ForecastDay, len(sampleForecast))
	for i, f := range sampleForecast {
		forecast[i] = entities.ForecastDay{
			Date:      today.AddDate(0, 0, i).Format(entities.DueDateLayout),
			High:      f.high,
			Low:       f.low,
			Condition: f.condition,
			Icon:      f.icon,
		}
	}

	return &entities.WeatherData{
		Current: entities.CurrentWeather{
			Temp:      72,
			Condition: "Partly Cloudy",
			Icon:      "partly-cloudy",
			Humidity:  65,
			WindSpeed: 8,
			Location:  location,
		},
		Forecast: forecast,
	}, nil
}
