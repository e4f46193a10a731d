// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/http"
	"github.com/wneessen/weather-strip/internal/logger"
	"github.com/wneessen/weather-strip/internal/vartype"
	"github.com/wneessen/weather-strip/internal/weather"
)

const (
	name        = "open-meteo"
	apiEndpoint = "https://api.open-meteo.com/v1/forecast"
	apiTimeout  = time.Second * 10
)

// DailyFields are the daily series requested from the API.
var DailyFields = []string{
	"temperature_2m_max", "weather_code", "precipitation_sum", "wind_speed_10m_max", "uv_index_max",
	"relative_humidity_2m_max",
}

type OpenMeteo struct {
	units    string
	days     uint
	endpoint string
	log      *logger.Logger
	http     *http.Client
}

type resDate struct {
	time.Time
}

type response struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	GenerationTimeMs     float64 `json:"generationtime_ms"`
	UTCOffsetSeconds     int     `json:"utc_offset_seconds"`
	Timezone             string  `json:"timezone"`
	TimezoneAbbreviation string  `json:"timezone_abbreviation"`
	Elevation            float64 `json:"elevation"`

	Error  bool   `json:"error"`
	Reason string `json:"reason"`

	DailyUnits struct {
		Time          string `json:"time"`
		Temperature   string `json:"temperature_2m_max"`
		WeatherCode   string `json:"weather_code"`
		Precipitation string `json:"precipitation_sum"`
		WindSpeed     string `json:"wind_speed_10m_max"`
		UVIndex       string `json:"uv_index_max"`
		Humidity      string `json:"relative_humidity_2m_max"`
	} `json:"daily_units"`
	Daily *struct {
		Time          []resDate            `json:"time"`
		Temperature   []vartype.VarFloat64 `json:"temperature_2m_max"`
		WeatherCode   []vartype.VarInt     `json:"weather_code"`
		Precipitation []vartype.VarFloat64 `json:"precipitation_sum"`
		WindSpeed     []vartype.VarFloat64 `json:"wind_speed_10m_max"`
		UVIndex       []vartype.VarFloat64 `json:"uv_index_max"`
		Humidity      []vartype.VarFloat64 `json:"relative_humidity_2m_max"`
	} `json:"daily"`
}

// New returns an Open-Meteo provider requesting days forecast days in the given unit system.
func New(client *http.Client, log *logger.Logger, units string, days uint) (*OpenMeteo, error) {
	if client == nil {
		return nil, errors.New("http client is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	return &OpenMeteo{units: units, days: days, endpoint: apiEndpoint, http: client, log: log}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// GetForecast fetches and normalizes the daily forecast for coords. Transport and decoding
// failures are returned as *weather.FetchError, incomplete series as *weather.MissingDataError.
func (o *OpenMeteo) GetForecast(ctx context.Context, coords city.Coordinate) (*weather.Forecast, error) {
	res := new(response)

	code, err := o.http.GetWithTimeout(ctx, o.endpoint, res, o.query(coords), nil, apiTimeout)
	if err != nil {
		return nil, weather.NewFetchError(name,
			fmt.Errorf("failed to retrieve weather data from Open-Meteo API: %w", err))
	}
	if code != 200 {
		if res.Reason != "" {
			return nil, weather.NewFetchError(name,
				fmt.Errorf("Open-Meteo API returned response code %d: %s", code, res.Reason))
		}
		return nil, weather.NewFetchError(name,
			fmt.Errorf("Open-Meteo API returned non-positive response code: %d", code))
	}
	if res.Daily == nil {
		return nil, &weather.MissingDataError{Field: "daily", Index: -1}
	}

	cols := weather.DailyColumns{
		Dates:         make([]time.Time, len(res.Daily.Time)),
		Temperatures:  res.Daily.Temperature,
		WeatherCodes:  res.Daily.WeatherCode,
		WindSpeeds:    res.Daily.WindSpeed,
		UVIndices:     res.Daily.UVIndex,
		Humidity:      res.Daily.Humidity,
		Precipitation: res.Daily.Precipitation,
	}
	for i, date := range res.Daily.Time {
		cols.Dates[i] = date.Time
	}
	days, err := weather.Normalize(cols)
	if err != nil {
		return nil, err
	}
	o.log.Debug("received daily forecast", slog.String("provider", name), slog.Int("days", len(days)),
		slog.String("timezone", res.Timezone), slog.Float64("generation_ms", res.GenerationTimeMs))

	return &weather.Forecast{
		GeneratedAt: time.Now(),
		Coordinates: coords,
		Units:       o.resolveUnits(res),
		Days:        days,
	}, nil
}

func (o *OpenMeteo) query(coords city.Coordinate) url.Values {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	query.Set("daily", strings.Join(DailyFields, ","))
	query.Set("timezone", "auto")
	if o.days > 0 {
		query.Set("forecast_days", strconv.FormatUint(uint64(o.days), 10))
	}
	if strings.EqualFold(o.units, "imperial") {
		query.Set("temperature_unit", "fahrenheit")
		query.Set("wind_speed_unit", "mph")
		query.Set("precipitation_unit", "inch")
	}
	return query
}

// resolveUnits merges the units reported by the API into the defaults of the configured system.
func (o *OpenMeteo) resolveUnits(res *response) weather.Units {
	units := weather.UnitsFor(strings.ToLower(o.units))
	if res.DailyUnits.Temperature != "" {
		units.Temperature = res.DailyUnits.Temperature
	}
	if res.DailyUnits.WindSpeed != "" {
		units.WindSpeed = res.DailyUnits.WindSpeed
	}
	if res.DailyUnits.Humidity != "" {
		units.Humidity = res.DailyUnits.Humidity
	}
	if res.DailyUnits.Precipitation != "" {
		units.Precipitation = res.DailyUnits.Precipitation
	}
	return units
}

// UnmarshalJSON parses the calendar dates of the daily series. Null dates stay zero and are
// rejected by the normalizer.
func (r *resDate) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty date")
	}
	if string(b) == "null" {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date format: %s", string(b))
	}

	apiDate, err := time.Parse(weather.DateLayout, string(b[1:len(b)-1]))
	if err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}
	r.Time = apiDate

	return nil
}
