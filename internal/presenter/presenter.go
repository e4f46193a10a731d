// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/humanize/locale/tr"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/classify"
	"github.com/wneessen/weather-strip/internal/config"
	"github.com/wneessen/weather-strip/internal/vartype"
	"github.com/wneessen/weather-strip/internal/weather"
)

const (
	ClassLoading = "loading"
	ClassError   = "error"
)

var ErrNoForecastDays = errors.New("forecast contains no days")

// DayView wraps a DailyForecast with presentation-related fields.
type DayView struct {
	weather.DailyForecast

	DayName   string
	Condition string
	Icon      string
	Category  classify.Category
}

type TemplateContext struct {
	City  city.City
	Units weather.Units

	UpdateTime    time.Time
	Sunrise       time.Time
	Sunset        time.Time
	MoonPhase     string
	MoonPhaseIcon string

	Today    DayView
	Upcoming []DayView
}

// Output is the JSON document printed for each state change.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
	Color   string `json:"color,omitempty"`
}

type Presenter struct {
	table     *classify.Table
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	text      *template.Template
	tooltip   *template.Template
}

// New parses the configured templates and verifies that they render against a sample
// forecast.
func New(conf *config.Config, table *classify.Table, localizer *spreak.Localizer) (*Presenter, error) {
	if table == nil {
		return nil, errors.New("classification table is required")
	}
	if localizer == nil {
		return nil, errors.New("localizer is required")
	}
	humanizer := humanize.MustNew(humanize.WithLocale(de.New(), tr.New())).CreateHumanizer(localizer.Language())
	pres := &Presenter{
		table:     table,
		localizer: localizer,
		humanizer: humanizer,
	}

	var err error
	pres.text, err = template.New("text").Funcs(pres.templateFuncMap()).Parse(conf.Templates.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	pres.tooltip, err = template.New("tooltip").Funcs(pres.templateFuncMap()).Parse(conf.Templates.Tooltip)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tooltip template: %w", err)
	}

	sample, err := pres.BuildContext(sampleCity, sampleForecast(weather.UnitsFor(conf.Units)))
	if err != nil {
		return nil, fmt.Errorf("failed to build sample context: %w", err)
	}
	if _, err = pres.Render(sample); err != nil {
		return nil, err
	}

	return pres, nil
}

// DayName returns the localized abbreviated weekday of date.
func (p *Presenter) DayName(date time.Time) string {
	return p.localizer.Get(dayNames[date.Weekday()])
}

// Condition returns the localized WMO description of code.
func (p *Presenter) Condition(code int) string {
	if desc, ok := WMOWeatherCodes[code]; ok {
		return p.localizer.Get(desc)
	}
	return p.localizer.Get(msgUnknown)
}

// BuildContext turns a forecast for c into the data the templates are rendered with.
func (p *Presenter) BuildContext(c city.City, forecast *weather.Forecast) (TemplateContext, error) {
	today, ok := forecast.Today()
	if !ok {
		return TemplateContext{}, ErrNoForecastDays
	}

	rise, set := sunrise.SunriseSunset(c.Latitude, c.Longitude, today.Date.Year(), today.Date.Month(),
		today.Date.Day())
	phase := moonphase.New(today.Date.Add(time.Hour * 12)).PhaseName()

	upcoming := forecast.Upcoming()
	ctx := TemplateContext{
		City:          c,
		Units:         forecast.Units,
		UpdateTime:    forecast.GeneratedAt,
		Sunrise:       rise.In(time.Local),
		Sunset:        set.In(time.Local),
		MoonPhase:     phase,
		MoonPhaseIcon: MoonPhaseIcon[phase],
		Today:         p.viewFromDay(today),
		Upcoming:      make([]DayView, len(upcoming)),
	}
	for i, day := range upcoming {
		ctx.Upcoming[i] = p.viewFromDay(day)
	}
	return ctx, nil
}

// Render executes the text and tooltip templates.
func (p *Presenter) Render(ctx TemplateContext) (Output, error) {
	textBuf := bytes.NewBuffer(nil)
	if err := p.text.Execute(textBuf, ctx); err != nil {
		return Output{}, fmt.Errorf("failed to render text template: %w", err)
	}
	tooltipBuf := bytes.NewBuffer(nil)
	if err := p.tooltip.Execute(tooltipBuf, ctx); err != nil {
		return Output{}, fmt.Errorf("failed to render tooltip template: %w", err)
	}

	return Output{
		Text:    textBuf.String(),
		Tooltip: tooltipBuf.String(),
		Class:   ctx.Today.Category.Name,
		Color:   ctx.Today.Category.Color,
	}, nil
}

// Loading returns the output shown while the forecast for c is fetched.
func (p *Presenter) Loading(c city.City) Output {
	return Output{
		Text:    c.Name,
		Tooltip: p.localizer.Get(msgLoading),
		Class:   ClassLoading,
	}
}

// Failure returns the output shown when fetching the forecast for c failed.
func (p *Presenter) Failure(c city.City, err error) Output {
	msg := msgFetchError
	if errors.Is(err, weather.ErrMissingData) {
		msg = msgMissingData
	}
	return Output{
		Text:    c.Name,
		Tooltip: p.localizer.Get(msg),
		Class:   ClassError,
	}
}

func (p *Presenter) viewFromDay(day weather.DailyForecast) DayView {
	category := p.table.Classify(day.WeatherCode)
	return DayView{
		DailyForecast: day,
		DayName:       p.DayName(day.Date),
		Condition:     p.Condition(day.WeatherCode),
		Icon:          category.Icon,
		Category:      category,
	}
}

var sampleCity = city.City{Name: "İstanbul", Latitude: 41.0082, Longitude: 28.9784}

func sampleForecast(units weather.Units) *weather.Forecast {
	date := weather.NewDate(time.Now())
	return &weather.Forecast{
		GeneratedAt: time.Now(),
		Units:       units,
		Days: []weather.DailyForecast{
			{
				Date: date, Temperature: 5.2, WeatherCode: 0,
				WindSpeed: vartype.NewVariable(10.0), UVIndex: vartype.NewVariable(2.0),
				Humidity: vartype.NewVariable(50.0), Precipitation: vartype.NewVariable(0.0),
			},
			{Date: date.AddDate(0, 0, 1), Temperature: 6.1, WeatherCode: 61},
		},
	}
}
