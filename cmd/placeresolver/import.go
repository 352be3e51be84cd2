// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wneessen/placeresolver/internal/importer"
)

func (a *app) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import places from Google My Maps or Google Takeout exports (Google only)",
	}
	cmd.AddCommand(a.newImportKMZCmd(), a.newImportTakeoutCmd())
	return cmd
}

func (a *app) newImportKMZCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kmz <file>",
		Short: "Import the placemarks of a My Maps KMZ export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open KMZ file: %w", err)
			}
			defer a.closeFile(file)
			info, err := file.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat KMZ file: %w", err)
			}

			waypoints, err := importer.ParseKMZ(file, info.Size())
			if err != nil {
				return err
			}
			opts, done := a.progress(len(waypoints), a.t.Get("Importing places"))
			results, err := a.service.ImportWaypoints(cmd.Context(), a.service.DefaultAccount(), waypoints, opts...)
			done()
			if err != nil {
				return err
			}
			a.reportSkipped(len(waypoints), len(results))
			return a.presenter.Results(results)
		},
	}
}

func (a *app) newImportTakeoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "takeout <file>",
		Short: "Import the places of a Google Takeout saved places CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer a.closeFile(file)

			urls, err := importer.ParseTakeoutCSV(file)
			if err != nil {
				return err
			}
			opts, done := a.progress(len(urls), a.t.Get("Importing places"))
			results, err := a.service.ImportURLs(cmd.Context(), a.service.DefaultAccount(), urls, opts...)
			done()
			if err != nil {
				return err
			}
			a.reportSkipped(len(urls), len(results))
			return a.presenter.Results(results)
		},
	}
}
