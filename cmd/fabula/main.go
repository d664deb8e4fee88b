// Fabula is an interpreter for declarative, condition-driven text
// adventures.
// Usage: fabula [--version] [--plain] [--mcp] [--script <file>] <game_path>
//
// The game path is a .json or .yaml definition file, or a directory of
// .lua content files. By default fabula plays the game in a full-screen
// terminal UI, falling back to a plain prompt when stdout is not a
// terminal. With --mcp it serves the game to Model Context Protocol
// clients over stdio instead.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hollis/fabula/cli"
	"github.com/hollis/fabula/engine"
	"github.com/hollis/fabula/loader"
	"github.com/hollis/fabula/mcp"
	"github.com/hollis/fabula/tui"
	"github.com/hollis/fabula/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	serveMCP := false
	var gamePath string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("fabula %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--mcp":
			serveMCP = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if gamePath == "" {
				gamePath = args[i]
			}
		}
	}

	if gamePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: fabula [--version] [--plain] [--mcp] [--script <file>] <game_path>\n")
		os.Exit(1)
	}

	def, err := loader.Load(gamePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	if serveMCP {
		runMCP(def)
		return
	}

	eng, err := engine.New(def, engine.Options{SkipValidation: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Script mode: read commands from file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Plain CLI if requested or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng)
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMCP(def *types.GameDefinition) {
	log.SetPrefix("[MCP] ")

	cfg, err := mcp.LoadConfig()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	server, err := mcp.NewServer(def, cfg)
	if err != nil {
		log.Fatalf("starting server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatalf("serving MCP: %v", err)
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
