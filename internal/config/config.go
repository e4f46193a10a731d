// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const (
	configEnv         = "WEATHERSTRIP"
	DefaultTextTpl    = "{{.Today.Icon}} {{.City.Name}} {{floatFormat .Today.Temperature 1}}{{.Units.Temperature}}"
	DefaultTooltipTpl = "{{.City.Name}} · {{.Today.Condition}}\n" +
		"{{loc \"wind\"}}: {{.Today.WindSpeed}} {{.Units.WindSpeed}} · " +
		"{{loc \"humidity\"}}: {{.Today.Humidity}}{{.Units.Humidity}} · " +
		"{{loc \"precipitation\"}}: {{.Today.Precipitation}} {{.Units.Precipitation}} · " +
		"{{loc \"uvindex\"}}: {{.Today.UVIndex}}\n" +
		"{{loc \"sunrise\"}}: {{timeFormat .Sunrise \"15:04\"}} · {{loc \"sunset\"}}: {{timeFormat .Sunset \"15:04\"}} · " +
		"{{.MoonPhaseIcon}} {{loc .MoonPhase}}\n" +
		"{{range .Upcoming}}\n{{pad .DayName 4}} {{pad .Icon 3}} {{pad (floatFormat .Temperature 1) 5}}{{$.Units.Temperature}}  {{.Condition}}{{end}}\n\n" +
		"{{loc \"updated\"}}: {{localizedTime .UpdateTime}}"
)

// City is a configured city entry. Cities without coordinates are geocoded by name.
type City struct {
	Name      string  `fig:"name"`
	Latitude  float64 `fig:"latitude"`
	Longitude float64 `fig:"longitude"`
}

// Condition is a configured classification entry.
type Condition struct {
	Name  string `fig:"name"`
	Color string `fig:"color"`
	Icon  string `fig:"icon"`
	Codes []int  `fig:"codes"`
}

// Config represents the application's configuration structure.
type Config struct {
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"metric"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	// Name of the city selected on start, defaults to the first city
	City string `fig:"city"`

	Weather struct {
		// Allowed values: open-meteo, omgo
		Provider string `fig:"provider" default:"open-meteo"`
		// Allowed value: 1 to 16
		ForecastDays uint    `fig:"forecast_days"`
		RateLimit    float64 `fig:"rate_limit"`
		RateBurst    int     `fig:"rate_burst"`
	} `fig:"weather"`

	GeoCoder struct {
		// Allowed values: nominatim, opencage, geocode-earth
		Provider string `fig:"provider" default:"nominatim"`
		APIKey   string `fig:"apikey"`
	} `fig:"geocoder"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"15m"`
	} `fig:"intervals"`

	Templates struct {
		Text    string `fig:"text"`
		Tooltip string `fig:"tooltip"`
	} `fig:"templates"`

	Cities []City `fig:"cities"`

	Conditions struct {
		Groups   []Condition `fig:"groups"`
		Fallback Condition   `fig:"fallback"`
	} `fig:"conditions"`
}

// newDefaults returns a Config holding the defaults of the numeric weather settings. fig
// treats a zero value as unset and would replace an explicit zero with its default tag,
// so these are set before loading and an explicit zero reaches Validate.
func newDefaults() *Config {
	conf := new(Config)
	conf.Weather.ForecastDays = 7
	conf.Weather.RateLimit = 1
	conf.Weather.RateBurst = 2
	return conf
}

func NewFromFile(path, file string) (*Config, error) {
	conf := newDefaults()
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := newDefaults()
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate checks the value ranges and fills in defaults that depend on the environment.
// City and condition tables are validated by their own packages when they are built.
func (c *Config) Validate() error {
	c.Units = strings.ToLower(c.Units)
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	c.Weather.Provider = strings.ToLower(c.Weather.Provider)
	if c.Weather.Provider != "open-meteo" && c.Weather.Provider != "omgo" {
		return fmt.Errorf("invalid weather provider: %s", c.Weather.Provider)
	}
	c.GeoCoder.Provider = strings.ToLower(c.GeoCoder.Provider)
	if c.Weather.ForecastDays < 1 || c.Weather.ForecastDays > 16 {
		return fmt.Errorf("invalid forecast days: %d", c.Weather.ForecastDays)
	}
	if c.Weather.RateLimit <= 0 {
		return fmt.Errorf("invalid rate limit: %f", c.Weather.RateLimit)
	}
	if c.Weather.RateBurst < 1 {
		return fmt.Errorf("invalid rate burst: %d", c.Weather.RateBurst)
	}
	if c.Intervals.WeatherUpdate < time.Minute {
		return fmt.Errorf("weather update interval too short: %s", c.Intervals.WeatherUpdate)
	}
	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}
	if c.Templates.Tooltip == "" {
		c.Templates.Tooltip = DefaultTooltipTpl
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
