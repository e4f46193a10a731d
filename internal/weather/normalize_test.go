// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"errors"
	"testing"
	"time"

	"github.com/wneessen/weather-strip/internal/vartype"
)

func TestNormalize(t *testing.T) {
	t.Run("example payload is zipped element-wise", func(t *testing.T) {
		days, err := Normalize(exampleColumns())
		if err != nil {
			t.Fatalf("failed to normalize: %s", err)
		}
		if len(days) != 2 {
			t.Fatalf("expected 2 records, got %d", len(days))
		}
		first := days[0]
		if first.Date.Format(DateLayout) != "2024-01-01" {
			t.Errorf("expected date 2024-01-01, got %s", first.Date.Format(DateLayout))
		}
		if first.Temperature != 5.2 {
			t.Errorf("expected temperature 5.2, got %f", first.Temperature)
		}
		if first.WeatherCode != 0 {
			t.Errorf("expected weather code 0, got %d", first.WeatherCode)
		}
		if first.WindSpeed.Value() != 10 || first.UVIndex.Value() != 2 || first.Humidity.Value() != 50 {
			t.Errorf("unexpected optional values: %+v", first)
		}
		if !first.Precipitation.IsSet() || first.Precipitation.Value() != 0 {
			t.Errorf("expected precipitation 0 to be set, got %s", first.Precipitation)
		}
		second := days[1]
		if second.Date.Format(DateLayout) != "2024-01-02" || second.Temperature != 6.1 ||
			second.WeatherCode != 61 || second.Precipitation.Value() != 1.2 {
			t.Errorf("unexpected second record: %+v", second)
		}
	})
	t.Run("order and count are preserved for any length", func(t *testing.T) {
		for _, n := range []int{1, 2, 7, 16} {
			cols := DailyColumns{}
			start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
			for i := range n {
				cols.Dates = append(cols.Dates, start.AddDate(0, 0, i))
				cols.Temperatures = append(cols.Temperatures, vartype.NewVariable(float64(i)))
				cols.WeatherCodes = append(cols.WeatherCodes, vartype.NewVariable(i))
			}
			days, err := Normalize(cols)
			if err != nil {
				t.Fatalf("failed to normalize %d days: %s", n, err)
			}
			if len(days) != n {
				t.Fatalf("expected %d records, got %d", n, len(days))
			}
			for i, day := range days {
				if !day.Date.Equal(start.AddDate(0, 0, i)) || day.WeatherCode != i {
					t.Errorf("record %d out of order: %+v", i, day)
				}
				if day.WindSpeed.IsSet() {
					t.Errorf("expected absent wind speed series to yield unset values")
				}
			}
		}
	})
	t.Run("values are not rounded", func(t *testing.T) {
		cols := exampleColumns()
		cols.Temperatures = floats(5.23456, 6.1)
		days, err := Normalize(cols)
		if err != nil {
			t.Fatalf("failed to normalize: %s", err)
		}
		if days[0].Temperature != 5.23456 {
			t.Errorf("expected temperature to be unrounded, got %f", days[0].Temperature)
		}
	})
	t.Run("null optional values stay unset", func(t *testing.T) {
		cols := exampleColumns()
		cols.UVIndices = []vartype.VarFloat64{{}, vartype.NewVariable(1.0)}
		days, err := Normalize(cols)
		if err != nil {
			t.Fatalf("failed to normalize: %s", err)
		}
		if days[0].UVIndex.IsSet() {
			t.Error("expected uv index of day 0 to be unset")
		}
	})
}

func TestNormalize_MissingData(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*DailyColumns)
		field  string
		index  int
	}{
		{"empty dates", func(c *DailyColumns) { c.Dates = nil }, "date", -1},
		{"empty temperatures", func(c *DailyColumns) { c.Temperatures = nil }, "temperature", -1},
		{"empty codes", func(c *DailyColumns) { c.WeatherCodes = nil }, "weather code", -1},
		{"short temperatures", func(c *DailyColumns) { c.Temperatures = floats(5.2) }, "temperature", -1},
		{
			"long codes",
			func(c *DailyColumns) {
				c.WeatherCodes = append(c.WeatherCodes, vartype.NewVariable(3))
			},
			"weather code", -1,
		},
		{"short wind speeds", func(c *DailyColumns) { c.WindSpeeds = floats(10) }, "wind speed", -1},
		{"short uv indices", func(c *DailyColumns) { c.UVIndices = floats(1, 2, 3) }, "uv index", -1},
		{"short humidity", func(c *DailyColumns) { c.Humidity = floats(50) }, "humidity", -1},
		{"short precipitation", func(c *DailyColumns) { c.Precipitation = floats(0) }, "precipitation", -1},
		{"zero date", func(c *DailyColumns) { c.Dates[1] = time.Time{} }, "date", 1},
		{
			"null temperature",
			func(c *DailyColumns) { c.Temperatures[0] = vartype.VarFloat64{} },
			"temperature", 0,
		},
		{
			"null code",
			func(c *DailyColumns) { c.WeatherCodes[1] = vartype.VarInt{} },
			"weather code", 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cols := exampleColumns()
			tc.modify(&cols)
			days, err := Normalize(cols)
			if err == nil {
				t.Fatal("expected normalization to fail")
			}
			if days != nil {
				t.Errorf("expected no records, got %d", len(days))
			}
			if !errors.Is(err, ErrMissingData) {
				t.Errorf("expected error to match ErrMissingData, got %s", err)
			}
			var missing *MissingDataError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingDataError, got %T", err)
			}
			if missing.Field != tc.field || missing.Index != tc.index {
				t.Errorf("expected field %q at %d, got %q at %d", tc.field, tc.index, missing.Field,
					missing.Index)
			}
		})
	}
}
