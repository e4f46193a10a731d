// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/wneessen/weather-strip/internal/city"
)

// RateLimitedProvider wraps a Provider so that rapid city changes do not flood the API.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewRateLimitedProvider allows rps requests per second with the given burst size.
func NewRateLimitedProvider(provider Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

// GetForecast waits for the limiter before calling the wrapped provider. An aborted wait is
// reported as a FetchError.
func (r *RateLimitedProvider) GetForecast(ctx context.Context, coords city.Coordinate) (*Forecast, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, NewFetchError(r.Name(), fmt.Errorf("rate limit wait canceled: %w", err))
	}
	return r.provider.GetForecast(ctx, coords)
}
