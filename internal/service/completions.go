// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/placeresolver/internal/batch"
	"github.com/wneessen/placeresolver/internal/place"
	"github.com/wneessen/placeresolver/internal/place/provider/google"
)

// Bulk resolves a list of free text queries and map links. Google Maps links are resolved with
// the Google provider, which fails the item if the account has no API key. Everything else is
// text searched with the account's provider and the first hit wins.
func (s *Service) Bulk(ctx context.Context, account Account, items []string, opts ...batch.Option) ([]place.Result,
	error,
) {
	provider, err := s.Provider(account)
	if err != nil {
		return nil, err
	}

	resolve := func(ctx context.Context, provider place.Provider, content string) (*place.Result, error) {
		if IsGoogleMapsLink(content) {
			linkProvider, err := s.googleProvider(account, "Google Maps links provided but missing API key")
			if err != nil {
				return nil, err
			}
			return resolveLink(ctx, linkProvider, content)
		}
		return firstTextMatch(ctx, provider, content, nil)
	}
	return batch.Resolve(ctx, s.logger, provider, items, resolve, opts...), nil
}

// Search text searches query and maps every hit.
func (s *Service) Search(ctx context.Context, account Account, query string) ([]place.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &place.ValidationError{Message: "query required"}
	}
	provider, err := s.Provider(account)
	if err != nil {
		return nil, err
	}

	records, err := provider.TextSearch(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return batch.Resolve(ctx, s.logger, provider, records, mapRecord), nil
}

// Nearby lists the places around location.
func (s *Service) Nearby(ctx context.Context, account Account, location place.Coordinate) ([]place.Result, error) {
	provider, err := s.Provider(account)
	if err != nil {
		return nil, err
	}

	records, err := provider.SearchNearby(ctx, location, google.DefaultNearbyRadius)
	if err != nil {
		return nil, err
	}
	return batch.Resolve(ctx, s.logger, provider, records, mapRecord), nil
}

// Geocode returns the bounding box of query.
func (s *Service) Geocode(ctx context.Context, account Account, query string) (place.BoundingBox, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return place.BoundingBox{}, &place.ValidationError{Message: "query required"}
	}
	provider, err := s.Provider(account)
	if err != nil {
		return place.BoundingBox{}, err
	}
	geocoder, ok := provider.(place.Geocoder)
	if !ok {
		return place.BoundingBox{}, place.Unsupported(provider.Name(), "geocoding")
	}
	return geocoder.Geocode(ctx, query)
}

// Route computes a route. Routing is always served by OSRM, independent of the account.
func (s *Service) Route(ctx context.Context, req place.RouteRequest) (place.RouteResponse, error) {
	return s.osmProvider().Route(ctx, req)
}

// ResolveShortlink resolves a maps.app.goo.gl shortlink id into a place. Resolution errors are
// returned as is, a link without a place yields place.ErrNotFound.
func (s *Service) ResolveShortlink(ctx context.Context, account Account, id string) (place.Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return place.Result{}, &place.ValidationError{Message: "Google ID is missing, resolve failed"}
	}
	provider, err := s.googleProvider(account, errMissingAPIKey)
	if err != nil {
		return place.Result{}, err
	}

	link, err := provider.ResolveShortlink(ctx, id)
	if err != nil {
		return place.Result{}, err
	}
	record, ok := provider.URLToPlace(ctx, link)
	if !ok {
		return place.Result{}, fmt.Errorf("shortlink %q: %w", id, place.ErrNotFound)
	}
	return provider.ResultToPlace(ctx, record)
}

func mapRecord(ctx context.Context, provider place.Provider, record place.Record) (*place.Result, error) {
	result, err := provider.ResultToPlace(ctx, record)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// firstTextMatch maps the first text search hit for query.
func firstTextMatch(ctx context.Context, provider place.Provider, query string, bias *place.Coordinate) (*place.Result,
	error,
) {
	records, err := provider.TextSearch(ctx, query, bias)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("text search %q: %w", query, place.ErrNotFound)
	}
	return mapRecord(ctx, provider, records[0])
}

// resolveLink maps the place behind a map link.
func resolveLink(ctx context.Context, resolver *google.Google, link string) (*place.Result, error) {
	record, ok := resolver.URLToPlace(ctx, link)
	if !ok {
		return nil, fmt.Errorf("link %q: %w", link, place.ErrNotFound)
	}
	return mapRecord(ctx, resolver, record)
}
