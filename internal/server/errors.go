// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	phttp "github.com/wneessen/placeresolver/internal/http"
	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
)

const internalErrorMessage = "Internal server error"

// respondError writes err as a {"detail": ...} response. Validation and unsupported operations
// map to 400, missing results to 404 with notFound as detail, upstream failures to 502.
func (s *Server) respondError(c *gin.Context, err error, notFound string) {
	status, detail := http.StatusInternalServerError, internalErrorMessage

	var validationErr *place.ValidationError
	var upstreamErr *phttp.UpstreamError
	switch {
	case errors.As(err, &validationErr):
		status, detail = http.StatusBadRequest, validationErr.Message
	case errors.Is(err, place.ErrUnsupportedOperation):
		status, detail = http.StatusBadRequest, err.Error()
	case errors.Is(err, place.ErrNotFound):
		status, detail = http.StatusNotFound, notFound
	case errors.As(err, &upstreamErr):
		status, detail = http.StatusBadGateway, upstreamErr.Message
		if detail == "" {
			detail = upstreamErr.Error()
		}
	}

	log := s.requestLog(c)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", logger.Err(err))
	} else {
		log.Debug("request rejected", logger.Err(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func (s *Server) badRequest(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": detail})
}
