/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package serve

import (
	"github.com/dburkart/fern/pkg/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "serve",
	Short: "Serve lex and parse requests over HTTP",

	Run: func(cmd *cobra.Command, args []string) {
		logger := viper.Get("logger").(zerolog.Logger)

		srv := server.New(
			logger,
			viper.GetInt("server.port"),
			viper.GetInt("parser.max-depth"),
		)

		if err := srv.ListenAndServe(); err != nil {
			logger.Fatal().Err(err).Msg("error listening and serving")
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().IntP("port", "p", 8080, "Port to serve /lex, /parse and /metrics on")

	// Bind flags to viper
	viper.BindPFlag("server.port", Command.Flags().Lookup("port"))
}
