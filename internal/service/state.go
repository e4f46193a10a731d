// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/weather"
)

// ViewState is the state of the display. It is exactly one of Loading, Failed or Ready.
type ViewState interface {
	SelectedCity() city.City
	viewState()
}

// Loading is shown while the forecast for City is fetched.
type Loading struct {
	City city.City
}

// Failed is shown when fetching the forecast for City failed. Err is either a
// *weather.MissingDataError or a *weather.FetchError.
type Failed struct {
	City city.City
	Err  error
}

// Ready holds the forecast of City.
type Ready struct {
	City     city.City
	Forecast *weather.Forecast
}

func (s Loading) SelectedCity() city.City { return s.City }
func (s Failed) SelectedCity() city.City  { return s.City }
func (s Ready) SelectedCity() city.City   { return s.City }

func (Loading) viewState() {}
func (Failed) viewState()  {}
func (Ready) viewState()   {}

// stateHolder allows storing the ViewState interface in an atomic.Pointer.
type stateHolder struct {
	state ViewState
}

// fetchResult is sent from a fetch goroutine back to the event loop.
type fetchResult struct {
	token uint64
	state ViewState
}
