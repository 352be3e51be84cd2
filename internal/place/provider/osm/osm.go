// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package osm implements the place provider backed by OpenStreetMap Nominatim for search and
// geocoding and the OSRM instances of routing.openstreetmap.de for routing.
package osm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/placeresolver/internal/http"
	"github.com/wneessen/placeresolver/internal/place"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	APITimeout        = time.Second * 10
	name              = "osm"
	searchLimit       = 3
)

// typeKeys are the OSM tag keys whose values make up the type tags of a result.
var typeKeys = []string{"amenity", "historic", "leisure", "natural", "shop", "tourism"}

var (
	_ place.Provider = (*OSM)(nil)
	_ place.Geocoder = (*OSM)(nil)
	_ place.Router   = (*OSM)(nil)
)

// OSM is the place provider for OpenStreetMap.
type OSM struct {
	http *http.Client
	lang language.Tag
}

// SearchResult is a raw Nominatim search result requested with extratags.
type SearchResult struct {
	PlaceID     int64             `json:"place_id"`
	OSMType     string            `json:"osm_type"`
	OSMID       int64             `json:"osm_id"`
	APILat      string            `json:"lat"`
	APILon      string            `json:"lon"`
	Category    string            `json:"category"`
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	BoundingBox []string          `json:"boundingbox"`
	ExtraTags   map[string]string `json:"extratags"`
}

// RecordID returns the OSM object reference, e.g. "node/123".
func (r *SearchResult) RecordID() string {
	if r.OSMType == "" {
		return strconv.FormatInt(r.PlaceID, 10)
	}
	return fmt.Sprintf("%s/%d", r.OSMType, r.OSMID)
}

func New(client *http.Client, lang language.Tag) *OSM {
	return &OSM{
		lang: lang,
		http: client,
	}
}

func (o *OSM) Name() string {
	return name
}

// Categorize returns the category for the given OSM tag values.
func (o *OSM) Categorize(tags []string) (place.Category, bool) {
	return Taxonomy.Categorize(tags)
}

// TextSearch searches Nominatim for up to three results. Nominatim has no soft location bias,
// so bias is ignored.
func (o *OSM) TextSearch(ctx context.Context, query string, _ *place.Coordinate) ([]place.Record, error) {
	var results []*SearchResult

	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "jsonv2")
	values.Set("limit", strconv.Itoa(searchLimit))
	values.Set("extratags", "1")
	values.Set("accept-language", o.lang.String())

	if _, err := o.http.GetWithTimeout(ctx, APISearchEndpoint, &results, values, nil, APITimeout); err != nil {
		return nil, fmt.Errorf("failed to search places via Nominatim API: %w", err)
	}

	records := make([]place.Record, 0, len(results))
	for _, result := range results {
		if result != nil {
			records = append(records, result)
		}
	}
	return records, nil
}

func (o *OSM) SearchNearby(context.Context, place.Coordinate, float64) ([]place.Record, error) {
	return nil, place.Unsupported(name, "nearby search")
}

func (o *OSM) PlaceDetails(context.Context, string) (place.Record, error) {
	return nil, place.Unsupported(name, "place details")
}

// ResultToPlace maps a Nominatim result into a place.Result.
func (o *OSM) ResultToPlace(_ context.Context, record place.Record) (place.Result, error) {
	raw, ok := record.(*SearchResult)
	if !ok || raw == nil {
		return place.Result{}, place.UnexpectedRecord(name, record)
	}
	tags := raw.ExtraTags

	result := place.Result{
		Name:        raw.Name,
		Place:       raw.Name,
		Description: description(raw),
		Types:       typeTags(raw),
	}
	if result.Name == "" {
		result.Name, _, _ = strings.Cut(raw.DisplayName, ",")
		result.Place = raw.DisplayName
	}

	if raw.APILat != "" {
		lat, err := strconv.ParseFloat(raw.APILat, 64)
		if err != nil {
			return place.Result{}, fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err)
		}
		result.Lat.Set(lat)
	}
	if raw.APILon != "" {
		lon, err := strconv.ParseFloat(raw.APILon, 64)
		if err != nil {
			return place.Result{}, fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err)
		}
		result.Lng.Set(lon)
	}

	if price, ok := parseCharge(tags["charge"]); ok {
		result.Price.Set(price)
	}
	dog := tags["dog"]
	result.AllowsDogs.Set(dog != "" && dog != "no")
	result.Restroom.Set(tags["toilets"] == "yes")

	if category, found := o.Categorize(result.Types); found {
		result.Category = category
	}

	return result, nil
}

func description(raw *SearchResult) string {
	var parts []string
	if hours := raw.ExtraTags["opening_hours"]; hours != "" {
		parts = append(parts, "Opening: "+hours)
	}
	if phone := raw.ExtraTags["contact:phone"]; phone != "" {
		parts = append(parts, "Phone: "+phone)
	}
	if website := raw.ExtraTags["contact:website"]; website != "" {
		parts = append(parts, "Website: "+website)
	}
	if raw.DisplayName != "" {
		parts = append(parts, raw.DisplayName)
	}
	return strings.Join(parts, "\n")
}

// typeTags collects the values of the type keys from the extra tags. Nominatim reports the
// primary tag of an object as category/type instead of repeating it in the extra tags.
func typeTags(raw *SearchResult) []string {
	var types []string
	seen := make(map[string]struct{}, len(typeKeys)+1)
	add := func(value string) {
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		types = append(types, value)
	}

	for _, key := range typeKeys {
		if key == raw.Category {
			add(raw.Type)
		}
		add(raw.ExtraTags[key])
	}
	return types
}

// parseCharge extracts the amount of an OSM charge tag such as "12.50 EUR". Only the first
// whitespace separated token is considered and everything but digits and dots is dropped.
func parseCharge(charge string) (float64, bool) {
	fields := strings.Fields(charge)
	if len(fields) == 0 {
		return 0, false
	}
	amount := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, fields[0])
	if amount == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
