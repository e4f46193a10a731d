// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/classify"
	"github.com/wneessen/weather-strip/internal/config"
	"github.com/wneessen/weather-strip/internal/geocode"
	geocodeearth "github.com/wneessen/weather-strip/internal/geocode/provider/geocode-earth"
	"github.com/wneessen/weather-strip/internal/geocode/provider/opencage"
	nominatim "github.com/wneessen/weather-strip/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/weather-strip/internal/http"
	"github.com/wneessen/weather-strip/internal/logger"
	"github.com/wneessen/weather-strip/internal/weather"
	"github.com/wneessen/weather-strip/internal/weather/provider/omgo"
	openmeteo "github.com/wneessen/weather-strip/internal/weather/provider/open-meteo"
)

const (
	cacheHitTTL  = time.Hour * 24
	cacheMissTTL = time.Minute * 15
)

func selectWeatherProvider(conf *config.Config, log *logger.Logger) (provider weather.Provider, err error) {
	switch strings.ToLower(conf.Weather.Provider) {
	case "open-meteo":
		provider, err = openmeteo.New(http.New(log), log, conf.Units, conf.Weather.ForecastDays)
		if err != nil {
			return provider, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
		}
	case "omgo":
		provider, err = omgo.New(log, conf.Units)
		if err != nil {
			return provider, fmt.Errorf("failed to create omgo weather provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", conf.Weather.Provider)
	}
	return weather.NewRateLimitedProvider(provider, conf.Weather.RateLimit, conf.Weather.RateBurst), nil
}

func selectGeocoder(conf *config.Config, log *logger.Logger, lang language.Tag) (geocode.Geocoder, error) {
	var geocoder geocode.Geocoder

	switch strings.ToLower(conf.GeoCoder.Provider) {
	case "nominatim":
		geocoder = nominatim.New(http.New(log), lang)
	case "opencage":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("opencage geocoder requires an API key")
		}
		geocoder = opencage.New(http.New(log), lang, conf.GeoCoder.APIKey)
	case "geocode-earth":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("geocode-earth geocoder requires an API key")
		}
		geocoder = geocodeearth.New(http.New(log), lang, conf.GeoCoder.APIKey)
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.GeoCoder.Provider)
	}

	return geocode.NewCachedGeocoder(geocoder, cacheHitTTL, cacheMissTTL), nil
}

func catalogFromConfig(conf *config.Config) (*city.Catalog, error) {
	if len(conf.Cities) == 0 {
		return city.Default(), nil
	}
	cities := make([]city.City, 0, len(conf.Cities))
	for _, entry := range conf.Cities {
		c, err := city.New(entry.Name, entry.Latitude, entry.Longitude)
		if err != nil {
			return nil, fmt.Errorf("invalid city %q: %w", entry.Name, err)
		}
		cities = append(cities, c)
	}
	return city.NewCatalog(cities)
}

func tableFromConfig(conf *config.Config) (*classify.Table, error) {
	if len(conf.Conditions.Groups) == 0 {
		return classify.Default(), nil
	}
	groups := make([]classify.Group, 0, len(conf.Conditions.Groups))
	for _, entry := range conf.Conditions.Groups {
		groups = append(groups, classify.Group{
			Category: categoryFromConfig(entry),
			Codes:    entry.Codes,
		})
	}
	fallback := classify.Overcast
	if conf.Conditions.Fallback.Name != "" {
		fallback = categoryFromConfig(conf.Conditions.Fallback)
	}
	return classify.NewTable(groups, fallback)
}

func categoryFromConfig(entry config.Condition) classify.Category {
	return classify.Category{Name: entry.Name, Color: entry.Color, Icon: entry.Icon}
}
