// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service implements the place completion pipelines: provider selection, single
// lookups and the batch imports.
package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/wneessen/placeresolver/internal/config"
	"github.com/wneessen/placeresolver/internal/http"
	"github.com/wneessen/placeresolver/internal/i18n"
	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
	"github.com/wneessen/placeresolver/internal/place/provider/google"
	"github.com/wneessen/placeresolver/internal/place/provider/osm"
)

const errMissingAPIKey = "Google Maps API key not configured"

// Account holds the map settings a request is resolved with.
type Account struct {
	MapProvider  string
	GoogleAPIKey string
}

// Service resolves place completions for an account.
type Service struct {
	config *config.Config
	http   *http.Client
	lang   language.Tag
	logger *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient replaces the HTTP client used to talk to the providers.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.http = client
	}
}

func New(conf *config.Config, log *logger.Logger, opts ...Option) *Service {
	service := &Service{
		config: conf,
		http:   http.New(log),
		lang:   i18n.Tag(conf.Locale),
		logger: log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// DefaultAccount returns the account configured for this instance.
func (s *Service) DefaultAccount() Account {
	return Account{
		MapProvider:  s.config.Account.MapProvider,
		GoogleAPIKey: s.config.Account.GoogleAPIKey,
	}
}

// Provider returns the place provider selected by the account. OSM is used unless Google is
// selected, which requires an API key.
func (s *Service) Provider(account Account) (place.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(account.MapProvider)) {
	case "", config.ProviderOSM:
		return osm.New(s.http, s.lang), nil
	case config.ProviderGoogle:
		return s.googleProvider(account, errMissingAPIKey)
	default:
		return nil, place.NewValidationError("unsupported map provider: %s", account.MapProvider)
	}
}

func (s *Service) googleProvider(account Account, missingKeyMessage string) (*google.Google, error) {
	if account.GoogleAPIKey == "" {
		return nil, &place.ValidationError{Message: missingKeyMessage}
	}
	provider, err := google.New(s.http, s.logger, s.lang, account.GoogleAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google place provider: %w", err)
	}
	return provider, nil
}

func (s *Service) osmProvider() *osm.OSM {
	return osm.New(s.http, s.lang)
}
