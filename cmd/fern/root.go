/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package fern

import (
	"fmt"
	"os"

	"github.com/dburkart/fern/cmd/fern/lex"
	"github.com/dburkart/fern/cmd/fern/parse"
	"github.com/dburkart/fern/cmd/fern/repl"
	"github.com/dburkart/fern/cmd/fern/serve"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "fern",
		Short: "Fern is the front end for a small statically typed language",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		SilenceUsage: true,
		Version:      Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the fern config file (default ./config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format of token listings [csv, json, text]")
	rootCmd.PersistentFlags().Int("max-depth", 256, "Maximum nesting depth accepted by the parser")

	// Bind viper config to the root flags
	viper.BindPFlag("fern.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("fern.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("fern.output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("parser.max-depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("fern version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	viper.AutomaticEnv()

	// Register commands on the root binary command
	for _, cmd := range []*cobra.Command{lex.Command, parse.Command, repl.Command, serve.Command} {
		cmd.Version = rootCmd.Version
		rootCmd.AddCommand(cmd)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
