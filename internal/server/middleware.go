// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wneessen/placeresolver/internal/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// requestLogger tags every request with a request ID, taken from the X-Request-ID header when
// present, and logs the outcome once the handlers are done.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		log := s.logger.With(
			slog.String("request_id", reqID),
			slog.String("http.method", c.Request.Method),
			slog.String("http.path", c.Request.URL.Path),
			slog.String("remote_addr", c.ClientIP()),
		)
		c.Set(loggerKey, log)
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		log.Log(c.Request.Context(), level, "request",
			slog.Int("status", status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		)
	}
}

// recovery turns a panicking handler into a 500 response.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				s.requestLog(c).Error("panic recovered", logger.Err(fmt.Errorf("%v", v)))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": internalErrorMessage})
			}
		}()
		c.Next()
	}
}

// requestLog returns the logger tagged with the current request ID.
func (s *Server) requestLog(c *gin.Context) *logger.Logger {
	if value, ok := c.Get(loggerKey); ok {
		if log, ok := value.(*logger.Logger); ok {
			return log
		}
	}
	return s.logger
}
