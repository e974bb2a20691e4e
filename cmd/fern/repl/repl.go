/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dburkart/fern/pkg/repl"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "repl",
	Short: "Interactive prompt for lexing and parsing expressions",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)
		output := viper.GetString("fern.output")
		if len(filterStringSlice(repl.Formats, output)) != 1 {
			log.Fatal().Msg("unsupported output format")
		}

		session := repl.NewSession(os.Stdout, output)
		session.Log = log
		session.MaxDepth = viper.GetInt("parser.max-depth")

		readlinePrompt(session, log)
	},
}

func filterStringSlice(s []string, prefix string) []string {
	retList := []string{}
	for i := range s {
		if strings.HasPrefix(s[i], prefix) {
			retList = append(retList, s[i])
		}
	}
	return retList
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func readlinePrompt(session *repl.Session, log zerolog.Logger) {
	// Configure the completer
	completer := readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("lex"),
		readline.PcItem("parse"),
		readline.PcItem("exit"),
	)

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mfern>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}

		line := strings.TrimSpace(ln.Line)
		if line == "" {
			continue
		}

		command := repl.ParseREPLCommand(line)
		switch command.Name {
		case repl.CommandHelp:
			fmt.Println("usage:")
			fmt.Println("    lex <source>      print the tokens of <source>")
			fmt.Println("    parse <expr>      print the syntax tree of <expr>")
			fmt.Println("    <expr>            same as parse")
			fmt.Println("    exit")
			continue
		case repl.CommandExit:
			return
		}

		if err := session.Eval(command); err != nil {
			log.Debug().Err(err).Msg("evaluation failed")
		}
		fmt.Println()
	}
	rl.Clean()
}
