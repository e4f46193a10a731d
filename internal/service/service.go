// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-strip/internal/city"
	"github.com/wneessen/weather-strip/internal/config"
	"github.com/wneessen/weather-strip/internal/geocode"
	"github.com/wneessen/weather-strip/internal/logger"
	"github.com/wneessen/weather-strip/internal/presenter"
	"github.com/wneessen/weather-strip/internal/weather"
)

const (
	requestBufferSize = 8
	updateJobName     = "weather_update_job"
)

var ErrUnknownCity = errors.New("city not in catalog")

type requestKind int

const (
	requestRefresh requestKind = iota
	requestNext
	requestSelect
)

type request struct {
	kind requestKind
	name string
}

// Service owns the view state. All state transitions happen on the event loop started
// by Run; fetches run concurrently and report back with the token they were issued.
type Service struct {
	config    *config.Config
	logger    *logger.Logger
	t         *spreak.Localizer
	catalog   *city.Catalog
	presenter *presenter.Presenter
	weather   weather.Provider
	geocoder  geocode.Geocoder
	scheduler gocron.Scheduler
	output    io.Writer
	SignalSrc signalSource

	requests chan request
	results  chan fetchResult
	token    atomic.Uint64
	state    atomic.Pointer[stateHolder]
}

// New builds the city catalog, the classification table, the providers and the presenter
// from conf.
func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer) (*Service, error) {
	if log == nil {
		log = logger.NewLogger(slog.LevelError, io.Discard)
	}
	if t == nil {
		return nil, errors.New("localizer is required")
	}

	catalog, err := catalogFromConfig(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create city catalog: %w", err)
	}
	table, err := tableFromConfig(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create classification table: %w", err)
	}
	if conf.City != "" {
		if _, ok := catalog.Lookup(conf.City); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCity, conf.City)
		}
	}

	pres, err := presenter.New(conf, table, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}
	provider, err := selectWeatherProvider(conf, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	geocoder, err := selectGeocoder(conf, log, t.Language())
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode provider: %w", err)
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Service{
		config:    conf,
		logger:    log,
		t:         t,
		catalog:   catalog,
		presenter: pres,
		weather:   provider,
		geocoder:  geocoder,
		scheduler: scheduler,
		output:    os.Stdout,
		SignalSrc: stdLibSignalSource{},
		requests:  make(chan request, requestBufferSize),
		results:   make(chan fetchResult),
	}, nil
}

// Run starts the refresh job and the signal handler and processes requests until ctx
// is canceled.
func (s *Service) Run(ctx context.Context) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.config.Intervals.WeatherUpdate),
		gocron.NewTask(s.Refresh),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(updateJobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", updateJobName, err)
	}
	s.scheduler.Start()

	sigChan := make(chan os.Signal, 1)
	s.SignalSrc.Notify(sigChan, syscall.SIGUSR1, syscall.SIGUSR2)
	go s.HandleSignals(ctx, sigChan)

	s.loop(ctx, s.initialCity())

	s.SignalSrc.Stop(sigChan)
	return s.scheduler.Shutdown()
}

// State returns the current view state, or nil before the first fetch was issued.
func (s *Service) State() ViewState {
	holder := s.state.Load()
	if holder == nil {
		return nil
	}
	return holder.state
}

// Refresh fetches the forecast of the selected city again.
func (s *Service) Refresh(ctx context.Context) {
	s.send(ctx, request{kind: requestRefresh})
}

// Next selects the city following the current one in the catalog.
func (s *Service) Next(ctx context.Context) {
	s.send(ctx, request{kind: requestNext})
}

// Select selects the catalog city with the given name.
func (s *Service) Select(ctx context.Context, name string) error {
	if _, ok := s.catalog.Lookup(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCity, name)
	}
	s.send(ctx, request{kind: requestSelect, name: name})
	return nil
}

func (s *Service) send(ctx context.Context, req request) {
	select {
	case <-ctx.Done():
	case s.requests <- req:
	}
}

func (s *Service) initialCity() city.City {
	if c, ok := s.catalog.Lookup(s.config.City); ok {
		return c
	}
	return s.catalog.First()
}

func (s *Service) loop(ctx context.Context, current city.City) {
	s.startFetch(ctx, current)
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.requests:
			switch req.kind {
			case requestNext:
				current = s.catalog.Next(current.Name)
			case requestSelect:
				c, ok := s.catalog.Lookup(req.name)
				if !ok {
					continue
				}
				current = c
			}
			s.startFetch(ctx, current)
		case res := <-s.results:
			if latest := s.token.Load(); res.token != latest {
				s.logger.Debug("discarding stale forecast result", slog.Uint64("token", res.token),
					slog.Uint64("latest", latest), slog.String("city", res.state.SelectedCity().Name))
				continue
			}
			s.publish(res.state)
		}
	}
}

// startFetch issues a new token, publishes the Loading state and fetches the forecast of c
// in the background. Results of older tokens still in flight are discarded by loop.
func (s *Service) startFetch(ctx context.Context, c city.City) {
	token := s.token.Add(1)
	s.publish(Loading{City: c})

	go func() {
		state := s.fetch(ctx, c)
		select {
		case <-ctx.Done():
		case s.results <- fetchResult{token: token, state: state}:
		}
	}()
}

func (s *Service) publish(state ViewState) {
	s.state.Store(&stateHolder{state: state})

	var output presenter.Output
	switch st := state.(type) {
	case Loading:
		output = s.presenter.Loading(st.City)
	case Failed:
		s.logger.Error("failed to fetch forecast", logger.Err(st.Err), slog.String("city", st.City.Name))
		output = s.presenter.Failure(st.City, st.Err)
	case Ready:
		var err error
		output, err = s.render(st)
		if err != nil {
			s.logger.Error("failed to render forecast", logger.Err(err), slog.String("city", st.City.Name))
			output = s.presenter.Failure(st.City, err)
		}
	}

	if err := json.NewEncoder(s.output).Encode(output); err != nil {
		s.logger.Error("failed to encode output", logger.Err(err))
	}
}

func (s *Service) render(state Ready) (presenter.Output, error) {
	tplCtx, err := s.presenter.BuildContext(state.City, state.Forecast)
	if err != nil {
		return presenter.Output{}, err
	}
	return s.presenter.Render(tplCtx)
}
