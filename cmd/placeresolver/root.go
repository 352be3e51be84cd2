// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vorlif/spreak"

	"github.com/wneessen/placeresolver/internal/config"
	"github.com/wneessen/placeresolver/internal/i18n"
	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/presenter"
	"github.com/wneessen/placeresolver/internal/service"
)

// app holds the flags and the components shared by all commands.
type app struct {
	confPath string
	json     bool
	format   string
	provider string

	conf      *config.Config
	log       *logger.Logger
	t         *spreak.Localizer
	service   *service.Service
	presenter *presenter.Presenter
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "placeresolver",
		Short: "Resolve free text, map links and map exports into enriched places",
		Long: `placeresolver turns search queries, Google Maps links, My Maps exports and Google
Takeout lists into places with coordinates, category, price level and amenities,
using OpenStreetMap or the Google Places API.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context(), cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.confPath, "config", "", "path to the config file")
	flags.BoolVar(&a.json, "json", false, "print results as JSON")
	flags.StringVar(&a.format, "format", "", "render every result with the given Go template")
	flags.StringVar(&a.provider, "provider", "", "map provider to use (osm or google), overrides the config")

	root.AddCommand(
		a.newSearchCmd(),
		a.newNearbyCmd(),
		a.newBulkCmd(),
		a.newImportCmd(),
		a.newGeocodeCmd(),
		a.newRouteCmd(),
		a.newResolveCmd(),
		a.newServeCmd(),
	)
	return root
}

// setup loads the configuration and initializes logging, localization, the service and the
// output presenter.
func (a *app) setup(ctx context.Context, out io.Writer) error {
	// Until the config is read, only errors are logged
	log := logger.New(slog.LevelError)

	conf, err := config.Load(a.confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		return err
	}
	if a.provider != "" {
		conf.Account.MapProvider = a.provider
		if err = conf.Validate(); err != nil {
			return err
		}
	}
	a.conf = conf
	a.log = logger.New(conf.LogLevel)

	a.t, err = i18n.New(conf.Locale)
	if err != nil {
		a.log.Error("failed to initialize localizer", logger.Err(err))
		return err
	}

	if err = conf.ResolveGoogleAPIKey(ctx); err != nil {
		a.log.Error(a.t.Get("failed to look up Google Maps API key"), logger.Err(err))
		return err
	}

	a.service = service.New(conf, a.log)

	var opts []presenter.Option
	if a.json {
		opts = append(opts, presenter.WithJSON())
	}
	opts = append(opts, presenter.WithFormat(a.format))
	a.presenter, err = presenter.New(out, a.t, i18n.Tag(conf.Locale), opts...)
	if err != nil {
		return err
	}
	return nil
}
