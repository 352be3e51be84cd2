// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the completions HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = a.conf.Server.Listen
			}

			a.log.Info(a.t.Get("starting placeresolver API server"), slog.String("version", version),
				slog.String("commit", commit), slog.String("date", date))
			if err := server.New(a.service, a.log).Run(cmd.Context(), listen); err != nil {
				a.log.Error(a.t.Get("failed to run placeresolver API server"), logger.Err(err))
				return err
			}
			a.log.Info(a.t.Get("shutting down placeresolver API server"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on, overrides the config")
	return cmd
}
