// Package cli provides terminal I/O and meta-command dispatch for playing
// a game at a plain prompt. The verb dispatch is shared with the TUI.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hollis/fabula/engine"
	"github.com/hollis/fabula/parser"
)

// CLI handles line-oriented interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool // echo each input line after the prompt (for script playback)
	lastCmd   string
}

// New creates a CLI wired to the given engine, saving under
// ~/.fabula/saves.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".fabula", "saves"),
	}
}

// Dispatch routes a parsed command to the engine verb it names and returns
// the turn's display text. Unknown verbs cost nothing and prompt the
// player to retry.
func Dispatch(eng *engine.Engine, cmd parser.Command) string {
	switch cmd.Verb {
	case "":
		return "What do you want to do?"
	case "look":
		return eng.Look(cmd.Object)
	case "examine":
		if cmd.Object == "" {
			return eng.Look("")
		}
		return eng.Examine(cmd.Object)
	case "go":
		if cmd.Object == "" {
			return "Go where?"
		}
		return eng.Go(cmd.Object)
	case "take":
		if cmd.Object == "" {
			return "Take what?"
		}
		return eng.Take(cmd.Object)
	case "talk":
		if cmd.Object == "" {
			return "Talk to whom?"
		}
		if cmd.Number != nil {
			return eng.TalkOption(cmd.Object, int(*cmd.Number))
		}
		return eng.Talk(cmd.Object)
	case "use":
		if cmd.Object == "" {
			return "Use what?"
		}
		return eng.Use(cmd.Object, cmd.Target, cmd.Number)
	case "inventory":
		return eng.Inventory()
	case "hint":
		return eng.Hint()
	case "status":
		return eng.StatusMessage()
	default:
		return fmt.Sprintf("I don't know how to %q. Try look, go, take, examine, talk, use, inventory, or hint.", cmd.Verb)
	}
}

// Run starts the game loop: intro and starting room, then prompt → parse →
// dispatch → print until EOF or /quit.
func (c *CLI) Run() {
	c.printLine(c.Engine.Start())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("\n> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Comment lines let script files annotate themselves.
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		// "again" or "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.printLine(Dispatch(c.Engine, parser.Parse(input)))
	}
}

// handleMeta dispatches slash commands. Returns true when the game should
// exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/restart":
		c.printLine(c.Engine.Start())

	case "/status":
		c.printLine(c.Engine.StatusMessage())

	case "/help":
		c.cmdHelp()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := c.Engine.Snapshot()
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	if err := c.Engine.LoadSnapshot(data); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, c.Engine.State().TurnCount))
	c.printLine(c.Engine.Look(""))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  - Save game (default: quicksave)",
		"  /load [name]  - Load game (default: quicksave)",
		"  /restart      - Start over from the beginning",
		"  /status       - Show location, turns, and inventory",
		"  /quit         - Exit game",
		"  /help         - Show this help",
		"",
		"Game commands:",
		"  look (l)              - Describe the room",
		"  examine <thing> (x)   - Look closely at something",
		"  go <place>            - Move through an exit",
		"  take/get <item>       - Pick something up",
		"  use <item> on <thing> - Use an item, optionally on something",
		"  talk <npc>            - Talk to someone",
		"  talk <npc> <number>   - Choose a dialogue option",
		"  inventory (i)         - Check what you're carrying",
		"  hint                  - Nudge yourself forward",
		"  again (g)             - Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintln(c.Out, "["+text+"]")
}
