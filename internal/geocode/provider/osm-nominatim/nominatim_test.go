// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-strip/internal/geocode"
	"github.com/wneessen/weather-strip/internal/http"
	"github.com/wneessen/weather-strip/internal/logger"
	"github.com/wneessen/weather-strip/internal/testhelper"
)

const (
	cityFile          = "../../../../testdata/nominatim_bursa.json"
	cityFileEmpty     = "../../../../testdata/nominatim_empty.json"
	cityFileBrokenLat = "../../../../testdata/nominatim_brokenlat.json"
	cityFileBrokenLon = "../../../../testdata/nominatim_brokenlon.json"
)

func TestNew(t *testing.T) {
	t.Run("creating a new provider succeeds", func(t *testing.T) {
		var coder geocode.Geocoder = testCoder(t, nil)
		if coder == nil {
			t.Fatal("expected a non-nil geocoder")
		}
	})
	t.Run("provider name is correct", func(t *testing.T) {
		coder := testCoder(t, nil)
		if coder.Name() != name {
			t.Errorf("expected provider name to be %q, got %q", name, coder.Name())
		}
	})
}

func TestNominatim_Search(t *testing.T) {
	t.Run("searching a city succeeds", func(t *testing.T) {
		var gotQuery string
		respond := testhelper.FileResponder(t, cityFile, 200)
		coder := testCoder(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotQuery = req.URL.RawQuery
			return respond(req)
		})
		loc, err := coder.Search(t.Context(), "Bursa")
		if err != nil {
			t.Fatalf("search failed: %s", err)
		}
		if !loc.Found {
			t.Fatal("expected location to be found")
		}
		if loc.Coordinate.Lat != 40.182792 {
			t.Errorf("expected latitude 40.182792, got %f", loc.Coordinate.Lat)
		}
		if loc.Coordinate.Lon != 29.066521 {
			t.Errorf("expected longitude 29.066521, got %f", loc.Coordinate.Lon)
		}
		if loc.DisplayName != "Bursa, Marmara Region, Türkiye" {
			t.Errorf("unexpected display name: %s", loc.DisplayName)
		}
		for _, want := range []string{"q=Bursa", "limit=1", "format=jsonv2", "accept-language=tr"} {
			if !strings.Contains(gotQuery, want) {
				t.Errorf("expected query %q to contain %q", gotQuery, want)
			}
		}
	})
	t.Run("empty result is a miss, not an error", func(t *testing.T) {
		coder := testCoder(t, testhelper.FileResponder(t, cityFileEmpty, 200))
		loc, err := coder.Search(t.Context(), "Atlantis")
		if err != nil {
			t.Fatalf("search failed: %s", err)
		}
		if loc.Found {
			t.Error("expected location not to be found")
		}
	})
	t.Run("broken coordinates fail", func(t *testing.T) {
		for _, file := range []string{cityFileBrokenLat, cityFileBrokenLon} {
			coder := testCoder(t, testhelper.FileResponder(t, file, 200))
			if _, err := coder.Search(t.Context(), "Bursa"); err == nil {
				t.Errorf("expected search with %s to fail", file)
			}
		}
	})
	t.Run("non-200 response fails", func(t *testing.T) {
		coder := testCoder(t, testhelper.FileResponder(t, cityFileEmpty, 503))
		_, err := coder.Search(t.Context(), "Bursa")
		if err == nil {
			t.Fatal("expected search to fail")
		}
		if !strings.Contains(err.Error(), "503") {
			t.Errorf("expected error to mention the status code, got %s", err)
		}
	})
	t.Run("transport errors fail", func(t *testing.T) {
		coder := testCoder(t, func(*stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		})
		if _, err := coder.Search(t.Context(), "Bursa"); err == nil {
			t.Fatal("expected search to fail")
		}
	})
}

func testCoder(t *testing.T, fn func(*stdhttp.Request) (*stdhttp.Response, error)) *Nominatim {
	t.Helper()
	client := http.New(logger.NewLogger(slog.LevelError, io.Discard))
	if fn != nil {
		client.Transport = testhelper.MockRoundTripper{Fn: fn}
	}
	return New(client, language.Turkish)
}
