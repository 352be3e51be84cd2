// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package google

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
)

// ShortlinkEndpoint is the host serving shortened map links.
const ShortlinkEndpoint = "https://maps.app.goo.gl"

var (
	shortlinkPattern = regexp.MustCompile(`maps\.app\.goo\.gl/([a-zA-Z0-9]+)`)
	cidPattern       = regexp.MustCompile(`(0x[0-9a-fA-F]+):(0x[0-9a-fA-F]+)`)
)

type legacyDetailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		PlaceID string `json:"place_id"`
	} `json:"result"`
}

// ShortlinkID returns the id of a maps.app.goo.gl shortlink contained in link.
func ShortlinkID(link string) (string, bool) {
	matches := shortlinkPattern.FindStringSubmatch(link)
	if len(matches) < 2 {
		return "", false
	}
	return matches[1], true
}

// URLToPlace resolves a shared map link into a place record. Shortlinks are expanded first, then
// the CID embedded in the link is mapped to a place id whose details are fetched. Every failure
// along the way results in false.
func (g *Google) URLToPlace(ctx context.Context, link string) (place.Record, bool) {
	if id, ok := ShortlinkID(link); ok {
		resolved, err := g.ResolveShortlink(ctx, id)
		if err != nil {
			g.logger.Debug("failed to resolve shortlink", "link", link, logger.Err(err))
			return nil, false
		}
		link = resolved
	}

	cid, ok := parseCID(link)
	if !ok {
		g.logger.Debug("no CID found in link", "link", link)
		return nil, false
	}
	placeID, err := g.placeIDFromCID(ctx, cid)
	if err != nil {
		g.logger.Debug("failed to map CID to place id", "cid", cid, logger.Err(err))
		return nil, false
	}
	details, err := g.PlaceDetails(ctx, placeID)
	if err != nil {
		g.logger.Debug("failed to retrieve place details", "place", placeID, logger.Err(err))
		return nil, false
	}
	return details, true
}

// ResolveShortlink follows the redirects of the shortlink with the given id and returns the
// final URL.
func (g *Google) ResolveShortlink(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", &place.ValidationError{Message: "shortlink id must not be empty"}
	}
	resolved, err := g.http.ResolveRedirect(ctx, ShortlinkEndpoint+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to resolve shortlink %q: %w", id, err)
	}
	return resolved, nil
}

// parseCID extracts the customer id, the second hex value of the first "0x…:0x…" pair.
func parseCID(link string) (uint64, bool) {
	matches := cidPattern.FindStringSubmatch(link)
	if len(matches) < 3 {
		return 0, false
	}
	cid, err := strconv.ParseUint(matches[2], 0, 64)
	if err != nil {
		return 0, false
	}
	return cid, true
}

func (g *Google) placeIDFromCID(ctx context.Context, cid uint64) (string, error) {
	query := url.Values{}
	query.Set("cid", strconv.FormatUint(cid, 10))
	query.Set("key", g.apikey)
	query.Set("fields", "place_id")
	query.Set("language", g.lang.String())

	var response legacyDetailsResponse
	if _, err := g.http.PostWithTimeout(ctx, LegacyDetailsEndpoint, &response, query, nil, nil,
		APITimeout); err != nil {
		return "", fmt.Errorf("failed to look up place id via Google Places API: %w", err)
	}
	if response.Result.PlaceID == "" {
		if response.ErrorMessage != "" {
			return "", fmt.Errorf("no place id for CID %d: %s", cid, response.ErrorMessage)
		}
		return "", fmt.Errorf("no place id for CID %d: %w", cid, place.ErrNotFound)
	}
	return response.Result.PlaceID, nil
}
