/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package lex

import (
	"fmt"
	"os"

	"github.com/dburkart/fern/internal/source"
	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/dburkart/fern/pkg/repl"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the tokens of a source file",
	Args:  cobra.MaximumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		output := viper.GetString("fern.output")
		writer := repl.NewOutputWriter(os.Stdout, output)

		name, r, err := source.Open(args)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to read source")
		}
		defer r.Close()

		sc := scanner.NewScanner(name, r)
		sc.Log = log

		tokens, err := sc.ScanAll()
		if err != nil {
			if msg, ok := source.Diagnose(sc, err); ok {
				fmt.Fprint(os.Stderr, msg)
				os.Exit(1)
			}
			log.Fatal().Err(err).Msg("unable to scan source")
		}

		if err := writer.Write(repl.NewTokenListing(tokens)); err != nil {
			log.Fatal().Err(err).Msg("unable to write tokens")
		}

		if stats, _ := cmd.Flags().GetBool("stats"); stats {
			fmt.Fprintf(os.Stderr, "%s: %s tokens on %s lines (%s)\n",
				name,
				humanize.Comma(int64(sc.Tokens())),
				humanize.Comma(int64(sc.Lines())),
				humanize.Bytes(uint64(sc.Bytes())),
			)
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().Bool("stats", false, "Print scan statistics to stderr")
}
