// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package osm

import (
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/wneessen/placeresolver/internal/http"
	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
	"github.com/wneessen/placeresolver/internal/testhelper"
	"github.com/wneessen/placeresolver/internal/vartype"
)

const (
	searchFile  = "../../../../testdata/osm_search.json"
	geocodeFile = "../../../../testdata/osm_geocode.json"
	routeFile   = "../../../../testdata/osm_route.json"
)

var cmpOpts = cmp.AllowUnexported(vartype.VarFloat64{}, vartype.VarBool{}, vartype.Variable[string]{})

func TestNew(t *testing.T) {
	provider := testProvider(t, nil)
	if provider.Name() != name {
		t.Errorf("expected provider name to be %q, got %q", name, provider.Name())
	}
}

func TestOSM_TextSearch(t *testing.T) {
	t.Run("text search sends the expected query", func(t *testing.T) {
		var req *stdhttp.Request
		provider := testProvider(t, func(r *stdhttp.Request) (*stdhttp.Response, error) {
			req = r
			return testhelper.FileResponse(t, 200, searchFile), nil
		})

		records, err := provider.TextSearch(t.Context(), "Franziskaner München", &place.Coordinate{Lat: 1, Lng: 2})
		if err != nil {
			t.Fatalf("text search failed: %s", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		if records[0].RecordID() != "node/987654321" {
			t.Errorf("expected record id node/987654321, got %s", records[0].RecordID())
		}

		query := req.URL.Query()
		expect := map[string]string{
			"q":               "Franziskaner München",
			"format":          "jsonv2",
			"limit":           "3",
			"extratags":       "1",
			"accept-language": "de",
		}
		for key, want := range expect {
			if got := query.Get(key); got != want {
				t.Errorf("expected query parameter %s=%q, got %q", key, want, got)
			}
		}
		if query.Has("viewbox") {
			t.Error("expected the location bias to be ignored")
		}
		if req.Header.Get("User-Agent") != http.UserAgent {
			t.Errorf("expected application user agent, got %q", req.Header.Get("User-Agent"))
		}
	})
	t.Run("upstream failures are reported", func(t *testing.T) {
		provider := testProvider(t, func(r *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.StringResponse(503, ""), nil
		})
		_, err := provider.TextSearch(t.Context(), "anything", nil)
		if http.StatusCode(err) != 503 {
			t.Errorf("expected upstream status 503, got %v", err)
		}
	})
}

func TestOSM_ResultToPlace(t *testing.T) {
	provider := testProvider(t, func(r *stdhttp.Request) (*stdhttp.Response, error) {
		return testhelper.FileResponse(t, 200, searchFile), nil
	})
	records, err := provider.TextSearch(t.Context(), "München", nil)
	if err != nil {
		t.Fatalf("text search failed: %s", err)
	}

	tests := []struct {
		name string
		want place.Result
	}{
		{
			"a fully tagged record",
			place.Result{
				Name:       "Zum Franziskaner",
				Place:      "Zum Franziskaner",
				Category:   place.CategoryFood,
				Lat:        vartype.NewVariable(48.1372),
				Lng:        vartype.NewVariable(11.5755),
				Price:      vartype.NewVariable(12.5),
				AllowsDogs: vartype.NewVariable(true),
				Restroom:   vartype.NewVariable(true),
				Description: "Opening: Mo-Su 11:00-24:00\nPhone: +49 89 2318120\n" +
					"Website: https://franziskaner.example/\n" +
					"Zum Franziskaner, 5, Residenzstraße, Altstadt, München, Bayern, 80333, Deutschland",
				Types: []string{"restaurant"},
			},
		},
		{
			"an unnamed record without extra tags",
			place.Result{
				Name:        "Zugspitze",
				Place:       "Zugspitze, Grainau, Landkreis Garmisch-Partenkirchen, Bayern, Deutschland",
				Category:    place.CategoryNature,
				Lat:         vartype.NewVariable(47.4210),
				Lng:         vartype.NewVariable(10.9853),
				AllowsDogs:  vartype.NewVariable(false),
				Restroom:    vartype.NewVariable(false),
				Description: "Zugspitze, Grainau, Landkreis Garmisch-Partenkirchen, Bayern, Deutschland",
				Types:       []string{"peak"},
			},
		},
		{
			"a record with negative tags",
			place.Result{
				Name:        "Englischer Garten",
				Place:       "Englischer Garten",
				Category:    place.CategoryCulture,
				Lat:         vartype.NewVariable(48.15),
				Lng:         vartype.NewVariable(11.59),
				AllowsDogs:  vartype.NewVariable(false),
				Restroom:    vartype.NewVariable(false),
				Description: "Englischer Garten, München, Bayern, Deutschland",
				Types:       []string{"park", "attraction"},
			},
		},
	}
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := provider.ResultToPlace(t.Context(), records[i])
			if err != nil {
				t.Fatalf("failed to map record: %s", err)
			}
			if diff := cmp.Diff(tc.want, result, cmpOpts); diff != "" {
				t.Errorf("mapped result mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("dog policy from the dog tag", func(t *testing.T) {
		dogTests := []struct {
			name string
			tags map[string]string
			want bool
		}{
			{"dogs allowed", map[string]string{"dog": "yes"}, true},
			{"dogs leashed", map[string]string{"dog": "leashed"}, true},
			{"dogs forbidden", map[string]string{"dog": "no"}, false},
			{"empty dog tag", map[string]string{"dog": ""}, false},
			{"no dog tag", map[string]string{"toilets": "yes"}, false},
		}
		for _, tc := range dogTests {
			result, err := provider.ResultToPlace(t.Context(), &SearchResult{DisplayName: "Somewhere", ExtraTags: tc.tags})
			if err != nil {
				t.Fatalf("%s: failed to map record: %s", tc.name, err)
			}
			if !result.AllowsDogs.IsSet() || result.AllowsDogs.Value() != tc.want {
				t.Errorf("%s: expected dogs allowed to be %t, got %+v", tc.name, tc.want, result.AllowsDogs)
			}
		}
	})
	t.Run("missing coordinates stay unset", func(t *testing.T) {
		result, err := provider.ResultToPlace(t.Context(), &SearchResult{DisplayName: "Somewhere"})
		if err != nil {
			t.Fatalf("failed to map record: %s", err)
		}
		if result.Lat.IsSet() || result.Lng.IsSet() {
			t.Error("expected coordinates to be unset")
		}
		if result.Name != "Somewhere" {
			t.Errorf("expected name from display name, got %q", result.Name)
		}
	})
	t.Run("malformed coordinates fail", func(t *testing.T) {
		_, err := provider.ResultToPlace(t.Context(), &SearchResult{APILat: "north", APILon: "1.0"})
		if err == nil {
			t.Error("expected malformed latitude to fail")
		}
		_, err = provider.ResultToPlace(t.Context(), &SearchResult{APILat: "1.0", APILon: "east"})
		if err == nil {
			t.Error("expected malformed longitude to fail")
		}
	})
	t.Run("a foreign record type is rejected", func(t *testing.T) {
		if _, err := provider.ResultToPlace(t.Context(), foreignRecord{}); err == nil {
			t.Error("expected mapping a foreign record to fail")
		}
	})
}

func TestParseCharge(t *testing.T) {
	tests := []struct {
		charge string
		want   float64
		found  bool
	}{
		{"12.50 EUR", 12.5, true},
		{"€5", 5, true},
		{"3", 3, true},
		{"  7.5  per hour", 7.5, true},
		{"", 0, false},
		{"free", 0, false},
		{"1.2.3 EUR", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.charge, func(t *testing.T) {
			got, found := parseCharge(tc.charge)
			if found != tc.found {
				t.Fatalf("expected found to be %t, got %t", tc.found, found)
			}
			if got != tc.want {
				t.Errorf("expected charge %f, got %f", tc.want, got)
			}
		})
	}
}

func TestOSM_Unsupported(t *testing.T) {
	provider := testProvider(t, nil)
	t.Run("nearby search is unsupported", func(t *testing.T) {
		_, err := provider.SearchNearby(t.Context(), place.Coordinate{Lat: 1, Lng: 2}, 1600)
		if !errors.Is(err, place.ErrUnsupportedOperation) {
			t.Errorf("expected error to be %s, got %v", place.ErrUnsupportedOperation, err)
		}
	})
	t.Run("place details are unsupported", func(t *testing.T) {
		_, err := provider.PlaceDetails(t.Context(), "node/1")
		if !errors.Is(err, place.ErrUnsupportedOperation) {
			t.Errorf("expected error to be %s, got %v", place.ErrUnsupportedOperation, err)
		}
	})
}

func TestOSM_Categorize(t *testing.T) {
	provider := testProvider(t, nil)
	tests := []struct {
		tags  []string
		want  place.Category
		found bool
	}{
		{[]string{"restaurant"}, place.CategoryFood, true},
		{[]string{"peak"}, place.CategoryNature, true},
		{[]string{"theme_park"}, place.CategoryEntertainment, true},
		{[]string{"castle"}, place.CategoryCulture, true},
		{[]string{"swimming_pool"}, place.CategoryAdventure, true},
		{[]string{"sauna"}, place.CategoryWellness, true},
		{[]string{"camp_site"}, place.CategoryAccommodation, true},
		{[]string{"unknown_tag"}, "", false},
	}
	for _, tc := range tests {
		got, found := provider.Categorize(tc.tags)
		if got != tc.want || found != tc.found {
			t.Errorf("categorize %v: expected (%q, %t), got (%q, %t)", tc.tags, tc.want, tc.found, got, found)
		}
	}
}

func testProvider(t *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error)) *OSM {
	t.Helper()
	client := http.New(logger.NewLogger(slog.LevelDebug, io.Discard))
	if fn == nil {
		fn = func(req *stdhttp.Request) (*stdhttp.Response, error) {
			t.Fatalf("unexpected request to %s", req.URL)
			return nil, nil
		}
	}
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(client, language.German)
}

type foreignRecord struct{}

func (foreignRecord) RecordID() string { return "foreign" }
