// Package cli provides the plain terminal front-end and script playback.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nharlow/qrpg/engine"
	"github.com/nharlow/qrpg/engine/prompt"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/engine/state"
	"github.com/nharlow/qrpg/world"
)

// CLI plays a session over plain line-based streams.
type CLI struct {
	Blueprint *world.Blueprint
	Src       rng.Source
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)
	OnSave    engine.SaveHook
}

// New creates a CLI on stdin/stdout.
func New(bp *world.Blueprint, src rng.Source) *CLI {
	return &CLI{
		Blueprint: bp,
		Src:       src,
		In:        os.Stdin,
		Out:       os.Stdout,
	}
}

// Run plays a full session. It returns when the player quits, the party is
// defeated, or the input stream ends.
func (c *CLI) Run() error {
	g := state.New(c.promptFunc(), c.Out)
	return engine.Run(g, c.Blueprint, c.Src, c.OnSave)
}

// promptFunc wraps prompt.FromReader with the CLI's conventions: a ">" default
// prompt, '#' comment lines skipped so script files can be annotated, and
// optional echo. Blank lines pass through (they confirm selections).
func (c *CLI) promptFunc() prompt.Func {
	read := prompt.FromReader(c.In, c.Out)
	return func(p string) (string, error) {
		if p == "" {
			p = ">"
		}
		for {
			line, err := read(p)
			if err != nil {
				return "", err
			}
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				continue
			}
			if c.EchoInput {
				fmt.Fprintln(c.Out, line)
			}
			return line, nil
		}
	}
}
