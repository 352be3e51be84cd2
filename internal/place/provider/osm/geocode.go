// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package osm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/wneessen/placeresolver/internal/place"
)

// Geocode returns the bounding box of the best Nominatim match for query.
func (o *OSM) Geocode(ctx context.Context, query string) (place.BoundingBox, error) {
	if query == "" {
		return place.BoundingBox{}, &place.ValidationError{Message: "geocode query must not be empty"}
	}
	var results []SearchResult

	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "json")
	values.Set("limit", "1")
	values.Set("accept-language", o.lang.String())

	if _, err := o.http.GetWithTimeout(ctx, APISearchEndpoint, &results, values, nil, APITimeout); err != nil {
		return place.BoundingBox{}, fmt.Errorf("failed to geocode query via Nominatim API: %w", err)
	}
	if len(results) < 1 {
		return place.BoundingBox{}, fmt.Errorf("geocode %q: %w", query, place.ErrNotFound)
	}

	// Nominatim orders the box as south, north, west, east
	bbox := results[0].BoundingBox
	if len(bbox) != 4 {
		return place.BoundingBox{}, fmt.Errorf("geocode %q: malformed bounding box: %w", query, place.ErrNotFound)
	}
	var box [4]float64
	for i, raw := range bbox {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return place.BoundingBox{}, fmt.Errorf("geocode %q: malformed bounding box: %w", query, place.ErrNotFound)
		}
		box[i] = v
	}
	south, north, west, east := box[0], box[1], box[2], box[3]

	return place.BoundingBox{
		Northeast: place.Coordinate{Lat: north, Lng: east},
		Southwest: place.Coordinate{Lat: south, Lng: west},
	}, nil
}
