// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"time"

	"github.com/wneessen/weather-strip/internal/vartype"
)

// DailyColumns holds the parallel daily series as delivered by a weather API. Dates,
// Temperatures and WeatherCodes are required; the remaining series are optional and may be
// nil.
type DailyColumns struct {
	Dates         []time.Time
	Temperatures  []vartype.VarFloat64
	WeatherCodes  []vartype.VarInt
	WindSpeeds    []vartype.VarFloat64
	UVIndices     []vartype.VarFloat64
	Humidity      []vartype.VarFloat64
	Precipitation []vartype.VarFloat64
}

// Normalize zips the daily series into one DailyForecast per day, preserving the input
// order. It returns a *MissingDataError and no records if a required series is absent or
// empty, if any present series differs in length from the dates, or if a required value
// is null.
func Normalize(cols DailyColumns) ([]DailyForecast, error) {
	days := len(cols.Dates)
	if days == 0 {
		return nil, &MissingDataError{Field: "date", Index: -1}
	}
	if len(cols.Temperatures) != days {
		return nil, &MissingDataError{Field: "temperature", Index: -1}
	}
	if len(cols.WeatherCodes) != days {
		return nil, &MissingDataError{Field: "weather code", Index: -1}
	}
	optional := []struct {
		field  string
		series []vartype.VarFloat64
	}{
		{"wind speed", cols.WindSpeeds},
		{"uv index", cols.UVIndices},
		{"humidity", cols.Humidity},
		{"precipitation", cols.Precipitation},
	}
	for _, opt := range optional {
		if len(opt.series) != 0 && len(opt.series) != days {
			return nil, &MissingDataError{Field: opt.field, Index: -1}
		}
	}

	records := make([]DailyForecast, days)
	for i := range days {
		if cols.Dates[i].IsZero() {
			return nil, &MissingDataError{Field: "date", Index: i}
		}
		if !cols.Temperatures[i].IsSet() {
			return nil, &MissingDataError{Field: "temperature", Index: i}
		}
		if !cols.WeatherCodes[i].IsSet() {
			return nil, &MissingDataError{Field: "weather code", Index: i}
		}
		records[i] = DailyForecast{
			Date:          NewDate(cols.Dates[i]),
			Temperature:   cols.Temperatures[i].Value(),
			WeatherCode:   cols.WeatherCodes[i].Value(),
			WindSpeed:     at(cols.WindSpeeds, i),
			UVIndex:       at(cols.UVIndices, i),
			Humidity:      at(cols.Humidity, i),
			Precipitation: at(cols.Precipitation, i),
		}
	}
	return records, nil
}

func at(series []vartype.VarFloat64, idx int) vartype.VarFloat64 {
	if idx >= len(series) {
		return vartype.VarFloat64{}
	}
	return series[idx]
}
