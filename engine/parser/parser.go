// Package parser resolves typed words into game commands by unique prefix.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Command is a resolved game command.
type Command int

const (
	None Command = iota
	Load
	Look
	Status
	Save
	Help
	Quantopedia
	Quit
)

// ErrAmbiguous is returned when a prefix matches more than one command.
var ErrAmbiguous = errors.New("parser: ambiguous command")

// quitLiteral ends the game only when a capitalized prefix of it is typed,
// so a stray "q" or "quit" never discards a session by accident.
const quitLiteral = "Quit"

var commands = []struct {
	cmd  Command
	name string
}{
	{Load, "load"},
	{Look, "look"},
	{Status, "status"},
	{Save, "save"},
	{Help, "help"},
	{Quantopedia, "quantopedia"},
}

func (c Command) String() string {
	for _, entry := range commands {
		if entry.cmd == c {
			return entry.name
		}
	}
	switch c {
	case Quit:
		return quitLiteral
	case None:
		return "none"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Parse resolves a single word. The quit literal is matched case-sensitively
// by prefix before anything else, so "Q" through "Quit" all end the game;
// all other commands match case-insensitively by prefix. An empty word or an
// unknown word resolves to None with no error. A prefix shared by two or
// more commands returns ErrAmbiguous.
func Parse(word string) (Command, error) {
	if word != "" && strings.HasPrefix(quitLiteral, word) {
		return Quit, nil
	}
	lower := strings.ToLower(word)
	if lower == "" {
		return None, nil
	}
	found := None
	count := 0
	for _, entry := range commands {
		if strings.HasPrefix(entry.name, lower) {
			found = entry.cmd
			count++
		}
	}
	switch count {
	case 0:
		return None, nil
	case 1:
		return found, nil
	}
	return None, fmt.Errorf("%w: %q", ErrAmbiguous, word)
}

// HelpText lists the commands for the in-game help screen.
func HelpText() string {
	var sb strings.Builder
	sb.WriteString("You can type the name of a direction to move (or its prefix,\n")
	sb.WriteString("such as n for north). Other commands:\n")
	for _, entry := range commands {
		sb.WriteString("  ")
		sb.WriteString(entry.name)
		sb.WriteString("\n")
	}
	sb.WriteString("  " + quitLiteral + " (case-sensitive, ends the game)")
	return sb.String()
}
