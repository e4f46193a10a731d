// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"

	"github.com/wneessen/weather-strip/internal/city"
)

// ErrNotFound is returned when a geocoder has no result for a query.
var ErrNotFound = errors.New("no coordinates found")

// Location is the result of a forward geocoding lookup.
type Location struct {
	Found       bool
	Query       string
	DisplayName string
	Coordinate  city.Coordinate

	CacheHit bool
}

// Geocoder resolves a place name into coordinates.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string) (Location, error)
}
