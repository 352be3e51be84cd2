// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wneessen/placeresolver/internal/importer"
	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
)

const (
	uploadField = "file"
	kmzSuffix   = ".kmz"
	csvMIMEType = "text/csv"
)

type nearbyRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type waypoint struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type routeRequest struct {
	Coordinates []waypoint    `json:"coordinates"`
	Profile     place.Profile `json:"profile"`
}

// toPlace converts the body into a place.RouteRequest. Waypoints without both lat and lng are
// rejected.
func (r routeRequest) toPlace() (place.RouteRequest, bool) {
	req := place.RouteRequest{
		Coordinates: make([]place.Coordinate, 0, len(r.Coordinates)),
		Profile:     r.Profile,
	}
	for _, point := range r.Coordinates {
		if point.Lat == nil || point.Lng == nil {
			return place.RouteRequest{}, false
		}
		req.Coordinates = append(req.Coordinates, place.Coordinate{Lat: *point.Lat, Lng: *point.Lng})
	}
	return req, true
}

func (s *Server) bulk(c *gin.Context) {
	var items []string
	if err := c.ShouldBindJSON(&items); err != nil {
		s.badRequest(c, "Expected a JSON list of strings")
		return
	}

	results, err := s.service.Bulk(c.Request.Context(), s.service.DefaultAccount(), items)
	if err != nil {
		s.respondError(c, err, "Place not found")
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		s.badRequest(c, "Query required")
		return
	}

	results, err := s.service.Search(c.Request.Context(), s.service.DefaultAccount(), query)
	if err != nil {
		s.respondError(c, err, "Place not found")
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) nearby(c *gin.Context) {
	var req nearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Latitude and longitude required")
		return
	}

	location := place.Coordinate{Lat: *req.Latitude, Lng: *req.Longitude}
	results, err := s.service.Nearby(c.Request.Context(), s.service.DefaultAccount(), location)
	if err != nil {
		s.respondError(c, err, "Place not found")
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) geocode(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		s.badRequest(c, "Query required")
		return
	}

	box, err := s.service.Geocode(c.Request.Context(), s.service.DefaultAccount(), query)
	if err != nil {
		s.respondError(c, err, "Location not found")
		return
	}
	c.JSON(http.StatusOK, box)
}

func (s *Server) route(c *gin.Context) {
	var body routeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badRequest(c, "Invalid route request")
		return
	}
	req, ok := body.toPlace()
	if !ok {
		s.badRequest(c, "Invalid route request")
		return
	}

	route, err := s.service.Route(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err, "Route not found")
		return
	}
	c.JSON(http.StatusOK, route)
}

func (s *Server) importMyMaps(c *gin.Context) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		s.badRequest(c, "File required")
		return
	}
	if !strings.EqualFold(path.Ext(header.Filename), kmzSuffix) {
		s.badRequest(c, "Invalid KMZ file")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.respondError(c, err, "")
		return
	}
	defer s.closeUpload(c, file.Close)

	waypoints, err := importer.ParseKMZ(file, header.Size)
	if err != nil {
		s.respondError(c, err, "")
		return
	}
	results, err := s.service.ImportWaypoints(c.Request.Context(), s.service.DefaultAccount(), waypoints)
	if err != nil {
		s.respondError(c, err, "Place not found")
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) importTakeout(c *gin.Context) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		s.badRequest(c, "File required")
		return
	}
	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil || mediaType != csvMIMEType {
		s.badRequest(c, "Expected CSV file")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.respondError(c, err, "")
		return
	}
	defer s.closeUpload(c, file.Close)

	urls, err := importer.ParseTakeoutCSV(file)
	if err != nil {
		s.respondError(c, err, "")
		return
	}
	results, err := s.service.ImportURLs(c.Request.Context(), s.service.DefaultAccount(), urls)
	if err != nil {
		s.respondError(c, err, "Place not found")
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) resolveShortlink(c *gin.Context) {
	result, err := s.service.ResolveShortlink(c.Request.Context(), s.service.DefaultAccount(), c.Param("id"))
	if err != nil {
		s.respondError(c, err, "Place not found")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) closeUpload(c *gin.Context, closeFn func() error) {
	if err := closeFn(); err != nil {
		s.requestLog(c).Error("failed to close uploaded file", logger.Err(err))
	}
}
