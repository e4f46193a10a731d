// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/geocode"
	"github.com/wneessen/weather-strip/internal/http"
)

const (
	APIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	APITimeout  = time.Second * 10
	name        = "opencage"
)

type OpenCage struct {
	apikey   string
	http     *http.Client
	lang     language.Tag
	endpoint string
}

type Response struct {
	Results      []Result `json:"results"`
	Status       Status   `json:"status"`
	TotalResults int      `json:"total_results"`
}

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Result struct {
	Components  Components `json:"components"`
	DisplayName string     `json:"formatted"`
	Geometry    Geometry   `json:"geometry"`
}

type Components struct {
	NomalizedCity string `json:"_normalized_city"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code"`
	State         string `json:"state"`
}

type Geometry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

func New(client *http.Client, lang language.Tag, apikey string) *OpenCage {
	return &OpenCage{
		apikey:   apikey,
		lang:     lang,
		http:     client,
		endpoint: APIEndpoint,
	}
}

func (o *OpenCage) Name() string {
	return name
}

// Search looks up the best matching place for query.
func (o *OpenCage) Search(ctx context.Context, query string) (geocode.Location, error) {
	var response Response
	loc := geocode.Location{Query: query}

	params := url.Values{}
	params.Set("key", o.apikey)
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("no_annotations", "1")
	params.Set("no_record", "1")
	params.Set("language", o.lang.String())

	code, err := o.http.GetWithTimeout(ctx, o.endpoint, &response, params, nil, APITimeout)
	if err != nil {
		return loc, fmt.Errorf("failed to retrieve coordinates from OpenCage API: %w", err)
	}
	if code != 200 {
		return loc, fmt.Errorf("OpenCage API returned non-positive response code: %d (%s)", code,
			response.Status.Message)
	}
	if response.TotalResults < 1 || len(response.Results) < 1 {
		return loc, nil
	}

	result := response.Results[0]
	loc.Found = true
	loc.DisplayName = result.DisplayName
	loc.Coordinate = city.Coordinate{Lat: result.Geometry.Lat, Lon: result.Geometry.Lon}
	return loc, nil
}
