// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocodeearth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/geocode"
	"github.com/wneessen/weather-strip/internal/http"
)

const (
	APIEndpoint = "https://api.geocode.earth/v1/search"
	APITimeout  = time.Second * 10
	name        = "geocode-earth"
)

var ErrInvalidGeometry = errors.New("feature geometry requires longitude and latitude")

type GeocodeEarth struct {
	apikey   string
	http     *http.Client
	lang     language.Tag
	endpoint string
}

type Response struct {
	Features []Feature `json:"features"`
	Type     string    `json:"type"`
}

// Feature is a GeoJSON feature. Geometry coordinates are ordered longitude, latitude.
type Feature struct {
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
	Type       string     `json:"type"`
}

type Geometry struct {
	Coordinates []float64 `json:"coordinates"`
	Type        string    `json:"type"`
}

type Properties struct {
	DisplayName string `json:"label"`
	City        string `json:"locality"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	State       string `json:"region"`
}

func New(client *http.Client, lang language.Tag, apikey string) *GeocodeEarth {
	return &GeocodeEarth{
		apikey:   apikey,
		lang:     lang,
		http:     client,
		endpoint: APIEndpoint,
	}
}

func (g *GeocodeEarth) Name() string {
	return name
}

// Search looks up the best matching place for query.
func (g *GeocodeEarth) Search(ctx context.Context, query string) (geocode.Location, error) {
	var response Response
	loc := geocode.Location{Query: query}

	params := url.Values{}
	params.Set("api_key", g.apikey)
	params.Set("text", query)
	params.Set("size", "1")
	params.Set("lang", g.lang.String())

	code, err := g.http.GetWithTimeout(ctx, g.endpoint, &response, params, nil, APITimeout)
	if err != nil {
		return loc, fmt.Errorf("failed to retrieve coordinates from geocode.earth API: %w", err)
	}
	if code != 200 {
		return loc, fmt.Errorf("received non-positive response code from geocode.earth API: %d", code)
	}
	if len(response.Features) < 1 {
		return loc, nil
	}

	feature := response.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return loc, ErrInvalidGeometry
	}
	loc.Found = true
	loc.DisplayName = feature.Properties.DisplayName
	loc.Coordinate = city.Coordinate{Lat: feature.Geometry.Coordinates[1], Lon: feature.Geometry.Coordinates[0]}
	return loc, nil
}
