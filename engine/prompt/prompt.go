// Package prompt defines the line-based input contract for the game: write a
// prompt string, read one line, repeat. Input sources are injectable: a live
// terminal or a pre-recorded script of lines for deterministic playback.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrExhausted is returned when a finite input source runs dry during a
// required read. For scripted runs this is a fatal condition that must
// surface clearly rather than hang.
var ErrExhausted = errors.New("prompt: input exhausted")

const invalidNumberMessage = "Invalid number selected."

// Func reads one line of input after showing the given prompt.
type Func func(prompt string) (string, error)

// FromReader returns a Func that writes prompts to out and reads lines from r.
func FromReader(r io.Reader, out io.Writer) Func {
	scanner := bufio.NewScanner(r)
	return func(prompt string) (string, error) {
		if prompt != "" {
			fmt.Fprint(out, prompt+" ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", ErrExhausted
		}
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
}

// FromLines returns a Func that replays a fixed sequence of lines.
func FromLines(lines ...string) Func {
	pos := 0
	return func(string) (string, error) {
		if pos >= len(lines) {
			return "", ErrExhausted
		}
		line := lines[pos]
		pos++
		return line, nil
	}
}

// Number prompts until the user enters a valid number in [1, max].
// If max is 0, any integer is accepted. Invalid or out-of-range entries
// print a retry message; a read failure (e.g. an exhausted script) aborts
// with the underlying error.
func Number(read Func, out io.Writer, message string, max int) (int, error) {
	for {
		line, err := read(message)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(out, invalidNumberMessage)
			continue
		}
		if max == 0 || (n > 0 && n <= max) {
			return n, nil
		}
		fmt.Fprintln(out, invalidNumberMessage)
	}
}

// Confirm runs collect, then offers the confirm/redo menu: an empty line
// accepts the collected inputs, "r" discards them and runs collect again.
func Confirm(read Func, out io.Writer, collect func() error) error {
	for {
		if err := collect(); err != nil {
			return err
		}
		fmt.Fprintln(out, "[enter]) Confirm selection.")
		fmt.Fprintln(out, "r) Redo selection.")
		for {
			line, err := read("Choose your action:")
			if err != nil {
				return err
			}
			if line == "r" {
				break
			}
			if line == "" {
				return nil
			}
		}
	}
}

// Name prompts until valid reports true for the entered name.
func Name(read Func, out io.Writer, what string, valid func(string) bool) (string, error) {
	for {
		line, err := read(fmt.Sprintf("Please enter a name for %s:", what))
		if err != nil {
			return "", err
		}
		if valid(line) {
			return line, nil
		}
		fmt.Fprintln(out, "Invalid name.")
	}
}
