// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wneessen/weather-strip/internal/city"
)

type mockGeocoder struct {
	calls int
	found bool
	err   error
}

func (m *mockGeocoder) Name() string { return "mock" }

func (m *mockGeocoder) Search(_ context.Context, query string) (Location, error) {
	m.calls++
	if m.err != nil {
		return Location{}, m.err
	}
	return Location{
		Found:       m.found,
		Query:       query,
		DisplayName: query + ", Türkiye",
		Coordinate:  city.Coordinate{Lat: 40.1828, Lon: 29.0665},
	}, nil
}

func TestCachedGeocoder_Name(t *testing.T) {
	coder := NewCachedGeocoder(&mockGeocoder{}, time.Minute, time.Minute)
	if coder.Name() != "geocoder cache using mock" {
		t.Errorf("unexpected name: %s", coder.Name())
	}
}

func TestCachedGeocoder_Search(t *testing.T) {
	t.Run("hits are served from the cache", func(t *testing.T) {
		mock := &mockGeocoder{found: true}
		coder := NewCachedGeocoder(mock, time.Minute, time.Second)

		loc, err := coder.Search(t.Context(), "Bursa")
		if err != nil {
			t.Fatalf("search failed: %s", err)
		}
		if loc.CacheHit {
			t.Error("expected first lookup not to be a cache hit")
		}
		loc, err = coder.Search(t.Context(), " BURSA ")
		if err != nil {
			t.Fatalf("search failed: %s", err)
		}
		if !loc.CacheHit {
			t.Error("expected second lookup to be a cache hit")
		}
		if mock.calls != 1 {
			t.Errorf("expected 1 upstream call, got %d", mock.calls)
		}
	})
	t.Run("entries expire", func(t *testing.T) {
		mock := &mockGeocoder{found: true}
		coder := NewCachedGeocoder(mock, time.Minute, time.Second)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		coder.now = func() time.Time { return now }

		if _, err := coder.Search(t.Context(), "Bursa"); err != nil {
			t.Fatalf("search failed: %s", err)
		}
		now = now.Add(time.Minute * 2)
		loc, err := coder.Search(t.Context(), "Bursa")
		if err != nil {
			t.Fatalf("search failed: %s", err)
		}
		if loc.CacheHit {
			t.Error("expected expired entry not to be a cache hit")
		}
		if mock.calls != 2 {
			t.Errorf("expected 2 upstream calls, got %d", mock.calls)
		}
	})
	t.Run("misses use the miss TTL", func(t *testing.T) {
		mock := &mockGeocoder{found: false}
		coder := NewCachedGeocoder(mock, time.Hour, time.Second)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		coder.now = func() time.Time { return now }

		if _, err := coder.Search(t.Context(), "Atlantis"); err != nil {
			t.Fatalf("search failed: %s", err)
		}
		now = now.Add(time.Second * 2)
		if _, err := coder.Search(t.Context(), "Atlantis"); err != nil {
			t.Fatalf("search failed: %s", err)
		}
		if mock.calls != 2 {
			t.Errorf("expected miss to expire after its TTL, got %d upstream calls", mock.calls)
		}
	})
	t.Run("errors are not cached", func(t *testing.T) {
		mock := &mockGeocoder{err: errors.New("intentionally failing")}
		coder := NewCachedGeocoder(mock, time.Hour, time.Hour)
		for range 2 {
			if _, err := coder.Search(t.Context(), "Bursa"); err == nil {
				t.Fatal("expected search to fail")
			}
		}
		if mock.calls != 2 {
			t.Errorf("expected 2 upstream calls, got %d", mock.calls)
		}
	})
}
