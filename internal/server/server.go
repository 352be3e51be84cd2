// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package server exposes the place completions over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/service"
)

const (
	readTimeout     = time.Second * 10
	writeTimeout    = time.Minute * 2
	shutdownTimeout = time.Second * 10
)

// Server serves the completions API for the instance's default account.
type Server struct {
	service *service.Service
	logger  *logger.Logger
}

func New(serv *service.Service, log *logger.Logger) *Server {
	return &Server{
		service: serv,
		logger:  log,
	}
}

// Handler returns the gin engine with all routes and middlewares registered.
func (s *Server) Handler() *gin.Engine {
	router := gin.New()
	router.Use(s.requestLogger(), s.recovery())

	completions := router.Group("/api/completions")
	completions.POST("/bulk", s.bulk)
	completions.GET("/search", s.search)
	completions.POST("/nearby", s.nearby)
	completions.GET("/geocode", s.geocode)
	completions.POST("/route", s.route)
	completions.POST("/mymaps-import", s.importMyMaps)
	completions.POST("/takeout-import", s.importTakeout)
	completions.GET("/google/resolve-shortlink/:id", s.resolveShortlink)

	return router
}

// Run listens on addr until ctx is cancelled and then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
