// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package importer reads place lists exported from Google My Maps (KMZ/KML) and Google Takeout
// (CSV).
package importer

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/wneessen/placeresolver/internal/place"
)

// maxKMLSize limits the size of the uncompressed KML document read from a KMZ archive.
const maxKMLSize = 32 << 20

var descriptionURLPattern = regexp.MustCompile(`https://[^\s<>"]+`)

// Waypoint is a named placemark. It carries either a coordinate or a link found in its
// description.
type Waypoint struct {
	Name       string
	Coordinate *place.Coordinate
	URL        string
}

type placemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Point       *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
}

// ParseKMZ reads the first KML document of a KMZ archive and returns its waypoints.
func ParseKMZ(r io.ReaderAt, size int64) ([]Waypoint, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, place.NewValidationError("invalid KMZ file: %s", err)
	}

	var document *zip.File
	for _, file := range archive.File {
		if strings.EqualFold(path.Ext(file.Name), ".kml") {
			document = file
			break
		}
	}
	if document == nil {
		return nil, place.NewValidationError("invalid KMZ file: no KML document found")
	}

	content, err := document.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open KML document %q: %w", document.Name, err)
	}
	defer func() { _ = content.Close() }()

	return ParseKML(io.LimitReader(content, maxKMLSize))
}

// ParseKML returns the waypoints of all named placemarks in a KML document. Placemarks with a
// point become coordinate waypoints, all others take the first https link of their description.
// Placemarks without name, point and link are skipped.
func ParseKML(r io.Reader) ([]Waypoint, error) {
	decoder := xml.NewDecoder(r)
	var waypoints []Waypoint
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, place.NewValidationError("invalid KML document: %s", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "Placemark" {
			continue
		}
		var mark placemark
		if err = decoder.DecodeElement(&mark, &start); err != nil {
			return nil, place.NewValidationError("invalid KML placemark: %s", err)
		}
		if waypoint, ok := mark.waypoint(); ok {
			waypoints = append(waypoints, waypoint)
		}
	}
	return waypoints, nil
}

func (p placemark) waypoint() (Waypoint, bool) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return Waypoint{}, false
	}
	if p.Point != nil {
		if coord, ok := parseCoordinates(p.Point.Coordinates); ok {
			return Waypoint{Name: name, Coordinate: &coord}, true
		}
		return Waypoint{}, false
	}
	if link := descriptionURLPattern.FindString(p.Description); link != "" {
		return Waypoint{Name: name, URL: link}, true
	}
	return Waypoint{}, false
}

// parseCoordinates parses a KML "lng,lat[,alt]" tuple.
func parseCoordinates(raw string) (place.Coordinate, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) < 2 {
		return place.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return place.Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return place.Coordinate{}, false
	}
	return place.Coordinate{Lat: lat, Lng: lng}, true
}
