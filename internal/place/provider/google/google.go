// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package google implements the place provider backed by the Google Places API (New), the legacy
// Places details endpoint for CID lookups and the Geocoding API.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/placeresolver/internal/http"
	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
	"github.com/wneessen/placeresolver/internal/vartype"
)

const (
	PlacesEndpoint        = "https://places.googleapis.com/v1"
	LegacyDetailsEndpoint = "https://maps.googleapis.com/maps/api/place/details/json"
	GeocodeEndpoint       = "https://maps.googleapis.com/maps/api/geocode/json"
	APITimeout            = time.Second * 10

	// DefaultNearbyRadius is the search radius in meters used when none is given.
	DefaultNearbyRadius = 1600.0

	name             = "google"
	searchBiasRadius = 400.0
	nearbyMaxResults = 15
	photoMaxWidth    = 1000
)

const (
	searchFieldMask = "places.id,places.types,places.location,places.priceRange,places.formattedAddress," +
		"places.websiteUri,places.internationalPhoneNumber,places.displayName,places.allowsDogs,places.photos," +
		"places.restroom,places.regularOpeningHours.weekdayDescriptions"
	detailsFieldMask = "id,types,location,priceRange,formattedAddress,websiteUri,internationalPhoneNumber," +
		"displayName,allowsDogs,photos,restroom,regularOpeningHours.weekdayDescriptions"
)

var (
	_ place.Provider    = (*Google)(nil)
	_ place.Geocoder    = (*Google)(nil)
	_ place.URLResolver = (*Google)(nil)
)

// Google is the place provider for the Google Places API.
type Google struct {
	apikey string
	http   *http.Client
	lang   language.Tag
	logger *logger.Logger
}

// Place is the raw place record returned by the Places API.
type Place struct {
	ID                       string               `json:"id"`
	Types                    []string             `json:"types,omitempty"`
	Location                 *Location            `json:"location,omitempty"`
	PriceRange               *PriceRange          `json:"priceRange,omitempty"`
	FormattedAddress         string               `json:"formattedAddress,omitempty"`
	WebsiteURI               string               `json:"websiteUri,omitempty"`
	InternationalPhoneNumber string               `json:"internationalPhoneNumber,omitempty"`
	DisplayName              LocalizedText        `json:"displayName"`
	AllowsDogs               *bool                `json:"allowsDogs,omitempty"`
	Restroom                 *bool                `json:"restroom,omitempty"`
	Photos                   []Photo              `json:"photos,omitempty"`
	RegularOpeningHours      *RegularOpeningHours `json:"regularOpeningHours,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PriceRange struct {
	StartPrice *Money `json:"startPrice,omitempty"`
	EndPrice   *Money `json:"endPrice,omitempty"`
}

// Money carries the whole units of an amount. The API encodes them as a JSON string.
type Money struct {
	CurrencyCode string      `json:"currencyCode"`
	Units        json.Number `json:"units"`
}

type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type Photo struct {
	Name string `json:"name"`
}

type RegularOpeningHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

// RecordID returns the Places API resource id.
func (p *Place) RecordID() string {
	return p.ID
}

type searchResponse struct {
	Places []*Place `json:"places"`
}

type circle struct {
	Center Location `json:"center"`
	Radius float64  `json:"radius"`
}

type area struct {
	Circle circle `json:"circle"`
}

type textSearchRequest struct {
	TextQuery    string `json:"textQuery"`
	LanguageCode string `json:"languageCode,omitempty"`
	LocationBias *area  `json:"locationBias,omitempty"`
}

type nearbySearchRequest struct {
	LocationRestriction area   `json:"locationRestriction"`
	MaxResultCount      int    `json:"maxResultCount"`
	LanguageCode        string `json:"languageCode,omitempty"`
}

// New returns a Google place provider. An API key is required.
func New(client *http.Client, log *logger.Logger, lang language.Tag, apikey string) (*Google, error) {
	if apikey == "" {
		return nil, &place.ValidationError{Message: "google place provider requires an API key"}
	}
	return &Google{
		apikey: apikey,
		http:   client,
		lang:   lang,
		logger: log,
	}, nil
}

func (g *Google) Name() string {
	return name
}

// Categorize returns the category for the given Places API type tags.
func (g *Google) Categorize(tags []string) (place.Category, bool) {
	return Taxonomy.Categorize(tags)
}

// TextSearch searches places by free text. A non-nil bias prefers results within 400 meters.
func (g *Google) TextSearch(ctx context.Context, query string, bias *place.Coordinate) ([]place.Record, error) {
	body := textSearchRequest{TextQuery: query, LanguageCode: g.lang.String()}
	if bias != nil {
		body.LocationBias = &area{Circle: circle{Center: toLocation(*bias), Radius: searchBiasRadius}}
	}

	var response searchResponse
	if err := g.post(ctx, PlacesEndpoint+"/places:searchText", body, searchFieldMask, &response); err != nil {
		return nil, fmt.Errorf("failed to search places via Google Places API: %w", err)
	}
	return toRecords(response.Places), nil
}

// SearchNearby lists up to 15 places within radius meters of location.
func (g *Google) SearchNearby(ctx context.Context, location place.Coordinate, radius float64) ([]place.Record, error) {
	if radius <= 0 {
		radius = DefaultNearbyRadius
	}
	body := nearbySearchRequest{
		LocationRestriction: area{Circle: circle{Center: toLocation(location), Radius: radius}},
		MaxResultCount:      nearbyMaxResults,
		LanguageCode:        g.lang.String(),
	}

	var response searchResponse
	if err := g.post(ctx, PlacesEndpoint+"/places:searchNearby", body, searchFieldMask, &response); err != nil {
		return nil, fmt.Errorf("failed to search nearby places via Google Places API: %w", err)
	}
	return toRecords(response.Places), nil
}

// PlaceDetails fetches the full record of the place with the given id.
func (g *Google) PlaceDetails(ctx context.Context, id string) (place.Record, error) {
	if id == "" {
		return nil, &place.ValidationError{Message: "place id must not be empty"}
	}

	query := url.Values{}
	query.Set("languageCode", g.lang.String())
	headers := g.headers(detailsFieldMask)

	details := new(Place)
	endpoint := PlacesEndpoint + "/places/" + url.PathEscape(id)
	if _, err := g.http.GetWithTimeout(ctx, endpoint, details, query, headers, APITimeout); err != nil {
		return nil, fmt.Errorf("failed to retrieve place details from Google Places API: %w", err)
	}
	return details, nil
}

// ResultToPlace maps a Places API record into a place.Result. Missing optional fields are left
// unset. The first photo, if any, is resolved into an image URL; a failed photo lookup only
// drops the image.
func (g *Google) ResultToPlace(ctx context.Context, record place.Record) (place.Result, error) {
	raw, ok := record.(*Place)
	if !ok || raw == nil {
		return place.Result{}, place.UnexpectedRecord(name, record)
	}

	result := place.Result{
		Name:        raw.DisplayName.Text,
		Place:       raw.DisplayName.Text,
		Price:       averagePrice(raw.PriceRange),
		AllowsDogs:  vartype.FromPointer(raw.AllowsDogs),
		Restroom:    vartype.FromPointer(raw.Restroom),
		Description: description(raw),
		Types:       raw.Types,
	}
	if raw.Location != nil {
		result.Lat.Set(raw.Location.Latitude)
		result.Lng.Set(raw.Location.Longitude)
	}
	if len(raw.Photos) > 0 && raw.Photos[0].Name != "" {
		image, err := g.photoURL(ctx, raw.Photos[0].Name)
		if err != nil {
			g.logger.Debug("failed to resolve place photo", "place", raw.ID, logger.Err(err))
		} else {
			result.Image.Set(image)
		}
	}
	if category, found := g.Categorize(raw.Types); found {
		result.Category = category
	}

	return result, nil
}

func (g *Google) photoURL(ctx context.Context, photoName string) (string, error) {
	query := url.Values{}
	query.Set("key", g.apikey)
	query.Set("maxWidthPx", strconv.Itoa(photoMaxWidth))
	return g.http.ResolveRedirect(ctx, PlacesEndpoint+"/"+photoName+"/media", query, nil)
}

func (g *Google) post(ctx context.Context, endpoint string, body any, fieldMask string, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	_, err = g.http.PostWithTimeout(ctx, endpoint, target, nil, bytes.NewReader(payload), g.headers(fieldMask),
		APITimeout)
	return err
}

func (g *Google) headers(fieldMask string) map[string]string {
	return map[string]string{
		"Content-Type":     "application/json",
		"X-Goog-Api-Key":   g.apikey,
		"X-Goog-FieldMask": fieldMask,
	}
}

// averagePrice returns the mean of start and end price, or the one that is present.
func averagePrice(priceRange *PriceRange) vartype.VarFloat64 {
	var price vartype.VarFloat64
	if priceRange == nil {
		return price
	}
	start, hasStart := priceRange.StartPrice.value()
	end, hasEnd := priceRange.EndPrice.value()
	switch {
	case hasStart && hasEnd:
		price.Set((start + end) / 2)
	case hasStart:
		price.Set(start)
	case hasEnd:
		price.Set(end)
	}
	return price
}

func (m *Money) value() (float64, bool) {
	if m == nil || m.Units == "" {
		return 0, false
	}
	units, err := m.Units.Float64()
	if err != nil {
		return 0, false
	}
	return units, true
}

func description(raw *Place) string {
	var parts []string
	if raw.RegularOpeningHours != nil && len(raw.RegularOpeningHours.WeekdayDescriptions) > 0 {
		parts = append(parts, "Opening: \n  "+strings.Join(raw.RegularOpeningHours.WeekdayDescriptions, "\n  "))
	}
	if raw.InternationalPhoneNumber != "" {
		parts = append(parts, "Phone: "+raw.InternationalPhoneNumber)
	}
	if raw.WebsiteURI != "" {
		parts = append(parts, "Website: "+raw.WebsiteURI)
	}
	if raw.FormattedAddress != "" {
		parts = append(parts, raw.FormattedAddress)
	}
	return strings.Join(parts, "\n")
}

func toLocation(c place.Coordinate) Location {
	return Location{Latitude: c.Lat, Longitude: c.Lng}
}

func toRecords(places []*Place) []place.Record {
	records := make([]place.Record, 0, len(places))
	for _, p := range places {
		if p != nil {
			records = append(records, p)
		}
	}
	return records
}
