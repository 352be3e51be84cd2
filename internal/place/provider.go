// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package place

import "context"

// Provider is implemented by each place API backend.
type Provider interface {
	Name() string
	TextSearch(ctx context.Context, query string, bias *Coordinate) ([]Record, error)
	SearchNearby(ctx context.Context, location Coordinate, radius float64) ([]Record, error)
	PlaceDetails(ctx context.Context, id string) (Record, error)
	ResultToPlace(ctx context.Context, record Record) (Result, error)
	Categorize(tags []string) (Category, bool)
}

// Geocoder resolves a free text query into the area it covers.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (BoundingBox, error)
}

// Router computes routes between coordinates.
type Router interface {
	Route(ctx context.Context, req RouteRequest) (RouteResponse, error)
}

// URLResolver resolves shared map links into provider records. A link that cannot be resolved
// yields false.
type URLResolver interface {
	URLToPlace(ctx context.Context, link string) (Record, bool)
}
