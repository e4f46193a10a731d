// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package omgo provides a weather provider backed by the omgo Open-Meteo client library.
package omgo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/logger"
	"github.com/wneessen/weather-strip/internal/weather"
)

const (
	name         = "omgo"
	fetchTimeout = time.Second * 10

	metricTemperature   = "temperature_2m_max"
	metricWeatherCode   = "weather_code"
	metricPrecipitation = "precipitation_sum"
	metricWindSpeed     = "wind_speed_10m_max"
	metricUVIndex       = "uv_index_max"
	metricHumidity      = "relative_humidity_2m_max"
)

var dailyMetrics = []string{
	metricTemperature, metricWeatherCode, metricPrecipitation, metricWindSpeed, metricUVIndex, metricHumidity,
}

type Omgo struct {
	client omgo.Client
	units  string
	log    *logger.Logger
}

func New(log *logger.Logger, units string) (*Omgo, error) {
	if log == nil {
		return nil, errors.New("logger is required")
	}
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	return &Omgo{client: client, units: units, log: log}, nil
}

func (o *Omgo) Name() string {
	return name
}

// GetForecast requests the daily series through the omgo client. The body is decoded into
// omgo's raw ForecastJSON instead of its parsed Forecast, which turns null values into zero.
func (o *Omgo) GetForecast(ctx context.Context, coords city.Coordinate) (*weather.Forecast, error) {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, fetchTimeout)
	defer cancelFetch()

	location, err := omgo.NewLocation(coords.Lat, coords.Lon)
	if err != nil {
		return nil, weather.NewFetchError(name, fmt.Errorf("failed to create Open-Meteo location: %w", err))
	}
	body, err := o.client.Get(ctxFetch, location, o.options())
	if err != nil {
		return nil, weather.NewFetchError(name, fmt.Errorf("failed to get forecast data: %w", err))
	}
	raw := new(omgo.ForecastJSON)
	if err = json.Unmarshal(body, raw); err != nil {
		return nil, weather.NewFetchError(name, fmt.Errorf("failed to decode forecast data: %w", err))
	}
	if raw.DailyMetrics == nil {
		return nil, &weather.MissingDataError{Field: "daily", Index: -1}
	}

	cols, err := columnsFromJSON(raw.DailyMetrics)
	if err != nil {
		return nil, weather.NewFetchError(name, err)
	}
	days, err := weather.Normalize(cols)
	if err != nil {
		return nil, err
	}
	o.log.Debug("received daily forecast", slog.String("provider", name), slog.Int("days", len(days)))

	return &weather.Forecast{
		GeneratedAt: time.Now(),
		Coordinates: coords,
		Units:       unitsFromJSON(raw.DailyUnits, o.units),
		Days:        days,
	}, nil
}

func (o *Omgo) options() *omgo.Options {
	opts := &omgo.Options{
		Timezone:     "auto",
		DailyMetrics: dailyMetrics,
	}
	switch strings.ToLower(o.units) {
	case "imperial":
		opts.TemperatureUnit = "fahrenheit"
		opts.PrecipitationUnit = "inch"
		opts.WindspeedUnit = "mph"
	default:
		opts.TemperatureUnit = "celsius"
		opts.PrecipitationUnit = "mm"
		opts.WindspeedUnit = "kmh"
	}
	return opts
}

// columnsFromJSON decodes the daily metric map into the columnar input of the normalizer.
// Null entries stay unset and metrics the API did not return stay nil.
func columnsFromJSON(metrics map[string]json.RawMessage) (weather.DailyColumns, error) {
	var cols weather.DailyColumns
	if raw, ok := metrics["time"]; ok {
		var dates []omgo.ApiDate
		if err := json.Unmarshal(raw, &dates); err != nil {
			return cols, fmt.Errorf("failed to decode daily dates: %w", err)
		}
		cols.Dates = make([]time.Time, len(dates))
		for i, date := range dates {
			cols.Dates[i] = date.Time
		}
	}

	targets := map[string]any{
		metricTemperature:   &cols.Temperatures,
		metricWeatherCode:   &cols.WeatherCodes,
		metricWindSpeed:     &cols.WindSpeeds,
		metricUVIndex:       &cols.UVIndices,
		metricHumidity:      &cols.Humidity,
		metricPrecipitation: &cols.Precipitation,
	}
	for metric, target := range targets {
		raw, ok := metrics[metric]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return cols, fmt.Errorf("failed to decode daily metric %s: %w", metric, err)
		}
	}
	return cols, nil
}

func unitsFromJSON(dailyUnits map[string]string, system string) weather.Units {
	units := weather.UnitsFor(strings.ToLower(system))
	if unit := dailyUnits[metricTemperature]; unit != "" {
		units.Temperature = unit
	}
	if unit := dailyUnits[metricWindSpeed]; unit != "" {
		units.WindSpeed = unit
	}
	if unit := dailyUnits[metricPrecipitation]; unit != "" {
		units.Precipitation = unit
	}
	if unit := dailyUnits[metricHumidity]; unit != "" {
		units.Humidity = unit
	}
	return units
}
