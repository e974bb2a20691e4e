/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"os"

	"github.com/dburkart/fern/internal/source"
	"github.com/dburkart/fern/pkg/lang/ast"
	"github.com/dburkart/fern/pkg/lang/parser"
	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.MaximumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		name, r, err := source.Open(args)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to read source")
		}
		defer r.Close()

		sc := scanner.NewScanner(name, r)
		sc.Log = log

		p := parser.New(sc)
		p.Log = log
		p.MaxDepth = viper.GetInt("parser.max-depth")

		root, err := p.Parse()
		if err != nil {
			if msg, ok := source.Diagnose(sc, err); ok {
				fmt.Fprint(os.Stderr, msg)
				os.Exit(1)
			}
			log.Fatal().Err(err).Msg("unable to parse source")
		}

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			fmt.Print(ast.ASTToString(root))
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().BoolP("quiet", "q", false, "Only report errors")
}
