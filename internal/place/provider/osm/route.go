// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/wneessen/placeresolver/internal/http"
	"github.com/wneessen/placeresolver/internal/place"
)

const (
	// APIRouteEndpoint is formatted with the routing profile.
	APIRouteEndpoint = "https://routing.openstreetmap.de/routed-%s/route/v1/driving"
	routeCodeOK      = "Ok"
	minWaypoints     = 2
)

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
		Geometry *place.LineString `json:"geometry"`
	} `json:"routes"`
}

// Route computes a route along the requested coordinates with OSRM.
func (o *OSM) Route(ctx context.Context, req place.RouteRequest) (place.RouteResponse, error) {
	if len(req.Coordinates) < minWaypoints {
		return place.RouteResponse{}, place.NewValidationError("routing impossible: at least %d coordinates required",
			minWaypoints)
	}
	if !req.Profile.Valid() {
		return place.RouteResponse{}, place.NewValidationError("routing profile %q is not supported", req.Profile)
	}

	waypoints := make([]string, 0, len(req.Coordinates))
	for _, coord := range req.Coordinates {
		waypoints = append(waypoints, strconv.FormatFloat(coord.Lng, 'f', -1, 64)+","+
			strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	}
	endpoint := fmt.Sprintf(APIRouteEndpoint, req.Profile) + "/" + strings.Join(waypoints, ";")

	query := url.Values{}
	query.Set("overview", "simplified")
	query.Set("geometries", "geojson")
	query.Set("alternatives", "false")
	query.Set("steps", "false")
	query.Set("annotations", "false")

	var response routeResponse
	if _, err := o.http.GetWithTimeout(ctx, endpoint, &response, query, nil, APITimeout); err != nil {
		// OSRM reports unroutable requests with a 4xx status and a regular response body
		var upstreamErr *http.UpstreamError
		if !errors.As(err, &upstreamErr) || len(upstreamErr.Body) == 0 ||
			json.Unmarshal(upstreamErr.Body, &response) != nil || response.Code == "" {
			return place.RouteResponse{}, fmt.Errorf("failed to retrieve route from OSRM API: %w", err)
		}
	}

	if response.Code != routeCodeOK {
		message := response.Message
		if message == "" {
			message = response.Code
		}
		return place.RouteResponse{}, fmt.Errorf("no route found: %s: %w", message, place.ErrNotFound)
	}
	if len(response.Routes) == 0 || response.Routes[0].Geometry == nil {
		return place.RouteResponse{}, fmt.Errorf("no route found: %w", place.ErrNotFound)
	}

	route := response.Routes[0]
	return place.RouteResponse{
		Distance: route.Distance,
		Duration: route.Duration,
		Geometry: *route.Geometry,
	}, nil
}
