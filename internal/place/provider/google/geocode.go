// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package google

import (
	"context"
	"fmt"
	"net/url"

	"github.com/wneessen/placeresolver/internal/http"
	"github.com/wneessen/placeresolver/internal/place"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Bounds   *bounds `json:"bounds"`
			Viewport *bounds `json:"viewport"`
		} `json:"geometry"`
	} `json:"results"`
}

type bounds struct {
	Northeast latLng `json:"northeast"`
	Southwest latLng `json:"southwest"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocode returns the bounds of the first Geocoding API result, falling back to its viewport.
func (g *Google) Geocode(ctx context.Context, query string) (place.BoundingBox, error) {
	if query == "" {
		return place.BoundingBox{}, &place.ValidationError{Message: "geocode query must not be empty"}
	}

	values := url.Values{}
	values.Set("address", query)
	values.Set("key", g.apikey)
	values.Set("language", g.lang.String())

	var response geocodeResponse
	if _, err := g.http.GetWithTimeout(ctx, GeocodeEndpoint, &response, values, nil, APITimeout); err != nil {
		return place.BoundingBox{}, fmt.Errorf("failed to geocode query via Google Geocoding API: %w", err)
	}

	switch response.Status {
	case statusOK:
	case statusZeroResults:
		return place.BoundingBox{}, fmt.Errorf("geocode %q: %w", query, place.ErrNotFound)
	default:
		message := response.ErrorMessage
		if message == "" {
			message = response.Status
		}
		return place.BoundingBox{}, &http.UpstreamError{StatusCode: 200, Message: message}
	}
	if len(response.Results) == 0 {
		return place.BoundingBox{}, fmt.Errorf("geocode %q: %w", query, place.ErrNotFound)
	}

	geometry := response.Results[0].Geometry
	box := geometry.Bounds
	if box == nil {
		box = geometry.Viewport
	}
	if box == nil {
		return place.BoundingBox{}, fmt.Errorf("geocode %q: no bounds: %w", query, place.ErrNotFound)
	}
	return place.BoundingBox{
		Northeast: place.Coordinate{Lat: box.Northeast.Lat, Lng: box.Northeast.Lng},
		Southwest: place.Coordinate{Lat: box.Southwest.Lat, Lng: box.Southwest.Lng},
	}, nil
}
