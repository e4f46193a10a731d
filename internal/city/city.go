// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package city holds the fixed list of cities the user can choose from.
package city

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

var (
	ErrEmptyCatalog  = errors.New("city catalog must contain at least one city")
	ErrDuplicateCity = errors.New("duplicate city name in catalog")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Coordinate represents a geographic coordinate in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// String returns the coordinate formatted the way weather and geocoding APIs expect it.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// City is a selectable location. A city without coordinates is resolved by name on
// selection.
type City struct {
	Name      string  `validate:"required"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

// New returns a validated City.
func New(name string, lat, lon float64) (City, error) {
	c := City{Name: name, Latitude: lat, Longitude: lon}
	if err := validate.Struct(c); err != nil {
		return City{}, fmt.Errorf("invalid city %q: %w", name, err)
	}
	return c, nil
}

// Coordinate returns the coordinate of the city.
func (c City) Coordinate() Coordinate {
	return Coordinate{Lat: c.Latitude, Lon: c.Longitude}
}

// Resolved reports whether the city carries coordinates.
func (c City) Resolved() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// WithCoordinate returns a copy of the city located at coords.
func (c City) WithCoordinate(coords Coordinate) City {
	c.Latitude, c.Longitude = coords.Lat, coords.Lon
	return c
}

// Catalog is an ordered, immutable list of cities.
type Catalog struct {
	cities []City
	index  map[string]int
}

// NewCatalog validates the given cities and returns a Catalog preserving their order.
// Names are compared case-insensitively with full Unicode case folding.
func NewCatalog(cities []City) (*Catalog, error) {
	if len(cities) == 0 {
		return nil, ErrEmptyCatalog
	}
	catalog := &Catalog{
		cities: make([]City, 0, len(cities)),
		index:  make(map[string]int, len(cities)),
	}
	for _, c := range cities {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("invalid city %q: %w", c.Name, err)
		}
		key := foldName(c.Name)
		if _, ok := catalog.index[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCity, c.Name)
		}
		catalog.index[key] = len(catalog.cities)
		catalog.cities = append(catalog.cities, c)
	}
	return catalog, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	catalog, err := NewCatalog([]City{
		{Name: "İstanbul", Latitude: 41.0082, Longitude: 28.9784},
		{Name: "Ankara", Latitude: 39.9334, Longitude: 32.8597},
		{Name: "İzmir", Latitude: 38.4192, Longitude: 27.1287},
		{Name: "Antalya", Latitude: 36.8969, Longitude: 30.7133},
	})
	if err != nil {
		panic(err)
	}
	return catalog
}

// Len returns the number of cities in the catalog.
func (c *Catalog) Len() int {
	return len(c.cities)
}

// Cities returns a copy of the cities in catalog order.
func (c *Catalog) Cities() []City {
	out := make([]City, len(c.cities))
	copy(out, c.cities)
	return out
}

// First returns the first city of the catalog.
func (c *Catalog) First() City {
	return c.cities[0]
}

// Lookup finds a city by name.
func (c *Catalog) Lookup(name string) (City, bool) {
	idx, ok := c.index[foldName(name)]
	if !ok {
		return City{}, false
	}
	return c.cities[idx], true
}

// Next returns the city following name, wrapping around at the end. Unknown names yield
// the first city.
func (c *Catalog) Next(name string) City {
	idx, ok := c.index[foldName(name)]
	if !ok {
		return c.First()
	}
	return c.cities[(idx+1)%len(c.cities)]
}

// foldName creates a new Caser on every call since Casers are not safe for concurrent use.
func foldName(name string) string {
	return cases.Fold().String(name)
}
