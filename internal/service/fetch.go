// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/geocode"
	"github.com/wneessen/weather-strip/internal/weather"
)

const FetchTimeout = time.Second * 15

// fetch resolves the coordinates of c if needed and retrieves its forecast. It always
// returns either a Failed or a Ready state.
func (s *Service) fetch(ctx context.Context, c city.City) ViewState {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	defer cancelFetch()

	if !c.Resolved() {
		loc, err := s.geocoder.Search(ctxFetch, c.Name)
		if err != nil {
			return Failed{City: c, Err: weather.NewFetchError(s.geocoder.Name(), err)}
		}
		if !loc.Found {
			return Failed{City: c, Err: weather.NewFetchError(s.geocoder.Name(), geocode.ErrNotFound)}
		}
		c = c.WithCoordinate(loc.Coordinate)
		s.logger.Debug("city resolved", slog.String("city", c.Name), slog.String("coordinates",
			loc.Coordinate.String()), slog.Bool("cache_hit", loc.CacheHit))
	}

	forecast, err := s.weather.GetForecast(ctxFetch, c.Coordinate())
	if err != nil {
		return Failed{City: c, Err: weather.NewFetchError(s.weather.Name(), err)}
	}
	return Ready{City: c, Forecast: forecast}
}
