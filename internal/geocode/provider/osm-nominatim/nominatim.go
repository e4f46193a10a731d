// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/geocode"
	"github.com/wneessen/weather-strip/internal/http"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	APITimeout        = time.Second * 10
	name              = "osm-nominatim"
)

type Nominatim struct {
	http     *http.Client
	lang     language.Tag
	endpoint string
}

type SearchResult struct {
	APILat      string `json:"lat"`
	APILon      string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func New(client *http.Client, lang language.Tag) *Nominatim {
	return &Nominatim{
		lang:     lang,
		http:     client,
		endpoint: APISearchEndpoint,
	}
}

func (n *Nominatim) Name() string {
	return name
}

// Search looks up the best matching place for query. An empty result set is not an error,
// it yields a Location with Found set to false so callers can cache the miss.
func (n *Nominatim) Search(ctx context.Context, query string) (geocode.Location, error) {
	var result []SearchResult
	loc := geocode.Location{Query: query}

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("accept-language", n.lang.String())

	code, err := n.http.GetWithTimeout(ctx, n.endpoint, &result, params, nil, APITimeout)
	if err != nil {
		return loc, fmt.Errorf("failed to fetch coordinates from Nominatim API: %w", err)
	}
	if code != 200 {
		return loc, fmt.Errorf("Nominatim API returned non-positive response code: %d", code)
	}
	if len(result) < 1 {
		return loc, nil
	}

	var coords city.Coordinate
	coords.Lat, err = strconv.ParseFloat(result[0].APILat, 64)
	if err != nil {
		return loc, fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err)
	}
	coords.Lon, err = strconv.ParseFloat(result[0].APILon, 64)
	if err != nil {
		return loc, fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err)
	}

	loc.Found = true
	loc.DisplayName = result[0].DisplayName
	loc.Coordinate = coords
	return loc, nil
}
