// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package place holds the provider independent place model, the capability interfaces every
// place provider implements and the category taxonomy.
package place

import (
	"fmt"

	"github.com/wneessen/placeresolver/internal/vartype"
)

// Result is the canonical place candidate every provider maps its records into.
type Result struct {
	Name        string                   `json:"name"`
	Place       string                   `json:"place"`
	Category    Category                 `json:"category,omitempty"`
	Lat         vartype.VarFloat64       `json:"lat"`
	Lng         vartype.VarFloat64       `json:"lng"`
	Price       vartype.VarFloat64       `json:"price"`
	AllowsDogs  vartype.VarBool          `json:"allowdog"`
	Restroom    vartype.VarBool          `json:"restroom"`
	Description string                   `json:"description"`
	Image       vartype.Variable[string] `json:"image"`
	Types       []string                 `json:"-"`
}

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// BoundingBox is the area a geocoded query covers.
type BoundingBox struct {
	Northeast Coordinate `json:"northeast"`
	Southwest Coordinate `json:"southwest"`
}

// Profile selects the routing network.
type Profile string

const (
	ProfileCar  Profile = "car"
	ProfileFoot Profile = "foot"
	ProfileBike Profile = "bike"
)

// Valid reports whether p names a supported routing profile.
func (p Profile) Valid() bool {
	switch p {
	case ProfileCar, ProfileFoot, ProfileBike:
		return true
	}
	return false
}

// RouteRequest asks for a route along the given waypoints.
type RouteRequest struct {
	Coordinates []Coordinate `json:"coordinates"`
	Profile     Profile      `json:"profile"`
}

// RouteResponse is a computed route. Distance is in meters, Duration in seconds.
type RouteResponse struct {
	Distance float64    `json:"distance"`
	Duration float64    `json:"duration"`
	Geometry LineString `json:"geometry"`
}

// LineString is a GeoJSON line string with [lng, lat] positions.
type LineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// Record is a raw provider record. Each provider defines its own concrete type and only
// accepts its own records in ResultToPlace.
type Record interface {
	RecordID() string
}
