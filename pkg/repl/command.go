/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"strings"
)

const (
	CommandLex   = "LEX"
	CommandParse = "PARSE"
	CommandHelp  = "HELP"
	CommandExit  = "EXIT"
)

type Command struct {
	Name  string
	Input string
}

// ParseREPLCommand splits a line of input into a command and its argument.
// Lines that don't start with a known command are parsed as an expression.
//
// This function assumes there is no '\n'
func ParseREPLCommand(line string) Command {
	line = strings.TrimSpace(line)

	// all commands have a space after them, if not then they are command only
	// like EXIT
	word, rest, _ := strings.Cut(line, " ")

	switch name := strings.ToUpper(word); name {
	case CommandLex, CommandParse:
		return Command{Name: name, Input: strings.TrimSpace(rest)}
	case CommandHelp, CommandExit:
		if rest == "" {
			return Command{Name: name}
		}
	}

	return Command{Name: CommandParse, Input: line}
}
