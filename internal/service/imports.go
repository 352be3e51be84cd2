// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"

	"github.com/wneessen/placeresolver/internal/batch"
	"github.com/wneessen/placeresolver/internal/importer"
	"github.com/wneessen/placeresolver/internal/place"
)

var errEmptyWaypoint = errors.New("waypoint has neither link nor coordinate")

// ImportWaypoints resolves My Maps waypoints with the Google provider. Waypoints with a link
// are resolved through the link, waypoints with a coordinate by a text search for their name
// biased to that coordinate.
func (s *Service) ImportWaypoints(ctx context.Context, account Account, waypoints []importer.Waypoint,
	opts ...batch.Option,
) ([]place.Result, error) {
	provider, err := s.googleProvider(account, errMissingAPIKey)
	if err != nil {
		return nil, err
	}

	resolve := func(ctx context.Context, _ place.Provider, waypoint importer.Waypoint) (*place.Result, error) {
		switch {
		case waypoint.URL != "":
			return resolveLink(ctx, provider, waypoint.URL)
		case waypoint.Coordinate != nil:
			return firstTextMatch(ctx, provider, waypoint.Name, waypoint.Coordinate)
		default:
			return nil, errEmptyWaypoint
		}
	}
	return batch.Resolve(ctx, s.logger, provider, waypoints, resolve, opts...), nil
}

// ImportURLs resolves a list of map links, as exported by Google Takeout, with the Google
// provider.
func (s *Service) ImportURLs(ctx context.Context, account Account, urls []string, opts ...batch.Option) (
	[]place.Result, error,
) {
	provider, err := s.googleProvider(account, errMissingAPIKey)
	if err != nil {
		return nil, err
	}

	resolve := func(ctx context.Context, _ place.Provider, link string) (*place.Result, error) {
		return resolveLink(ctx, provider, link)
	}
	return batch.Resolve(ctx, s.logger, provider, urls, resolve, opts...), nil
}
