// qrpg is a quantum-flavored text adventure: explore the frontier, battle
// quantum errors, and keep your party's qubits out of the |0> state.
// Usage: qrpg [--version] [--plain] [--script <file>] [--seed <n>] [world_directory]
package main

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/nharlow/qrpg/cli"
	"github.com/nharlow/qrpg/data"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/loader"
	"github.com/nharlow/qrpg/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	seed := time.Now().UnixNano()
	var worldDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("qrpg %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires an integer\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed requires an integer: %v\n", err)
				os.Exit(1)
			}
			seed = n
		default:
			if worldDir == "" {
				worldDir = args[i]
			} else {
				fmt.Fprintf(os.Stderr, "Usage: qrpg [--version] [--plain] [--script <file>] [--seed <n>] [world_directory]\n")
				os.Exit(1)
			}
		}
	}

	// Content: the embedded world unless a directory of .lua files is given.
	var worldFS fs.FS = data.FS()
	if worldDir != "" {
		worldFS = os.DirFS(worldDir)
	}

	bp, err := loader.Load(worldFS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	src := rng.New(seed)
	// A session can be replayed exactly by passing the same seed back in.
	fmt.Fprintf(os.Stderr, "rng seed: %d\n", src.Seed())

	// Script mode: read inputs from a file, force plain output, echo lines.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(bp, src)
		c.In = f
		c.EchoInput = true
		if err := c.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Use the plain CLI if --plain or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(bp, src)
		if err := c.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(bp, src); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
