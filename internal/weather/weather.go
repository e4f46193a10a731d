// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"time"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/vartype"
)

// DateLayout is the layout of the calendar dates in the daily series.
const DateLayout = "2006-01-02"

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	GetForecast(ctx context.Context, coords city.Coordinate) (*Forecast, error)
}

// Forecast is the normalized multi-day forecast for one location.
type Forecast struct {
	GeneratedAt time.Time
	Coordinates city.Coordinate
	Units       Units
	Days        []DailyForecast
}

// DailyForecast is the aggregated weather of a single calendar day.
type DailyForecast struct {
	Date          time.Time
	Temperature   float64
	WeatherCode   int
	WindSpeed     vartype.VarFloat64
	UVIndex       vartype.VarFloat64
	Humidity      vartype.VarFloat64
	Precipitation vartype.VarFloat64
}

type Units struct {
	Temperature   string
	WindSpeed     string
	Humidity      string
	Precipitation string
}

// MetricUnits and ImperialUnits are used when the API does not report units.
var (
	MetricUnits = Units{
		Temperature:   "°C",
		WindSpeed:     "km/h",
		Humidity:      "%",
		Precipitation: "mm",
	}
	ImperialUnits = Units{
		Temperature:   "°F",
		WindSpeed:     "mph",
		Humidity:      "%",
		Precipitation: "inch",
	}
)

// UnitsFor returns the default units for a unit system name.
func UnitsFor(system string) Units {
	if system == "imperial" {
		return ImperialUnits
	}
	return MetricUnits
}

// Today returns the first day of the forecast.
func (f *Forecast) Today() (DailyForecast, bool) {
	if f == nil || len(f.Days) == 0 {
		return DailyForecast{}, false
	}
	return f.Days[0], true
}

// Upcoming returns all days after today.
func (f *Forecast) Upcoming() []DailyForecast {
	if f == nil || len(f.Days) < 2 {
		return nil
	}
	return f.Days[1:]
}

// NewDate returns the calendar date of t as midnight UTC, dropping time and zone.
func NewDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
