// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wneessen/placeresolver/internal/place"
	"github.com/wneessen/placeresolver/internal/place/provider/google"
)

func (a *app) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search places by free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.service.Search(cmd.Context(), a.service.DefaultAccount(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.presenter.Results(results)
		},
	}
}

func (a *app) newNearbyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nearby <latitude,longitude>",
		Short: "List places around a coordinate (Google only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := parseCoordinate(args[0])
			if err != nil {
				return err
			}
			results, err := a.service.Nearby(cmd.Context(), a.service.DefaultAccount(), location)
			if err != nil {
				return err
			}
			return a.presenter.Results(results)
		},
	}
}

func (a *app) newBulkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk [file]",
		Short: "Resolve a list of queries and map links, one per line",
		Long: `Resolve a list of queries and map links, one per line. The list is read from the
given file, or from stdin if no file or "-" is given. Items that cannot be resolved
are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open input file: %w", err)
				}
				defer a.closeFile(file)
				input = file
			}
			items, err := readLines(input)
			if err != nil {
				return err
			}

			opts, done := a.progress(len(items), a.t.Get("Resolving places"))
			results, err := a.service.Bulk(cmd.Context(), a.service.DefaultAccount(), items, opts...)
			done()
			if err != nil {
				return err
			}
			a.reportSkipped(len(items), len(results))
			return a.presenter.Results(results)
		},
	}
}

func (a *app) newGeocodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geocode <query>",
		Short: "Look up the bounding box of a location",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := a.service.Geocode(cmd.Context(), a.service.DefaultAccount(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.presenter.BoundingBox(box)
		},
	}
}

func (a *app) newRouteCmd() *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "route <latitude,longitude> <latitude,longitude>...",
		Short: "Compute a route along two or more coordinates",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := place.RouteRequest{Profile: place.Profile(profile)}
			for _, arg := range args {
				coord, err := parseCoordinate(arg)
				if err != nil {
					return err
				}
				req.Coordinates = append(req.Coordinates, coord)
			}
			route, err := a.service.Route(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.presenter.Route(route)
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", string(place.ProfileCar), "routing profile (car, foot or bike)")
	return cmd
}

func (a *app) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <shortlink>",
		Short: "Resolve a maps.app.goo.gl shortlink or its id into a place (Google only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if linkID, ok := google.ShortlinkID(id); ok {
				id = linkID
			}
			result, err := a.service.ResolveShortlink(cmd.Context(), a.service.DefaultAccount(), id)
			if err != nil {
				return err
			}
			return a.presenter.Place(result)
		},
	}
}
