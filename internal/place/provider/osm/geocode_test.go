// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package osm

import (
	"errors"
	stdhttp "net/http"
	"testing"

	"github.com/wneessen/placeresolver/internal/place"
	"github.com/wneessen/placeresolver/internal/testhelper"
)

func TestOSM_Geocode(t *testing.T) {
	t.Run("geocoding returns the bounding box", func(t *testing.T) {
		provider := testProvider(t, func(r *stdhttp.Request) (*stdhttp.Response, error) {
			if r.URL.Query().Get("format") != "json" || r.URL.Query().Get("limit") != "1" {
				t.Errorf("unexpected geocode query: %s", r.URL.RawQuery)
			}
			return testhelper.FileResponse(t, 200, geocodeFile), nil
		})
		box, err := provider.Geocode(t.Context(), "Berlin")
		if err != nil {
			t.Fatalf("geocoding failed: %s", err)
		}
		want := place.BoundingBox{
			Northeast: place.Coordinate{Lat: 52.6755087, Lng: 13.7611609},
			Southwest: place.Coordinate{Lat: 52.3382448, Lng: 13.0883450},
		}
		if box != want {
			t.Errorf("expected bounding box %+v, got %+v", want, box)
		}
	})
	t.Run("no match is not found", func(t *testing.T) {
		provider := testProvider(t, func(r *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.StringResponse(200, `[]`), nil
		})
		_, err := provider.Geocode(t.Context(), "xyzzy")
		if !errors.Is(err, place.ErrNotFound) {
			t.Errorf("expected error to be %s, got %v", place.ErrNotFound, err)
		}
	})
	t.Run("a malformed bounding box is not found", func(t *testing.T) {
		bodies := []string{
			`[{"boundingbox":["1","2","3"]}]`,
			`[{"boundingbox":["1","2","3","east"]}]`,
			`[{}]`,
		}
		for _, body := range bodies {
			provider := testProvider(t, func(r *stdhttp.Request) (*stdhttp.Response, error) {
				return testhelper.StringResponse(200, body), nil
			})
			_, err := provider.Geocode(t.Context(), "Berlin")
			if !errors.Is(err, place.ErrNotFound) {
				t.Errorf("expected error to be %s for %s, got %v", place.ErrNotFound, body, err)
			}
		}
	})
}
