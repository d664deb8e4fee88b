package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hollis/fabula/engine"
)

// SessionInput is embedded in every tool input so clients can thread their
// session id through each call.
type SessionInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session id returned by a previous call; omit to start a new session"`
}

// StartGameInput begins a new adventure.
type StartGameInput struct {
	SessionInput
}

// LookInput describes the room or a named thing.
type LookInput struct {
	SessionInput
	Target string `json:"target,omitempty" jsonschema:"optional item, person, or feature to look at"`
}

// GoInput moves the player.
type GoInput struct {
	SessionInput
	Direction string `json:"direction" jsonschema:"the direction or room name to move to"`
}

// TakeInput picks up an item.
type TakeInput struct {
	SessionInput
	Item string `json:"item" jsonschema:"the name of the item to pick up"`
}

// ExamineInput inspects something closely.
type ExamineInput struct {
	SessionInput
	Target string `json:"target" jsonschema:"the item or person to examine closely"`
}

// TalkInput opens or continues a conversation.
type TalkInput struct {
	SessionInput
	Character string `json:"character" jsonschema:"the name of the character to talk to"`
	Option    *int   `json:"option,omitempty" jsonschema:"optional dialogue option number to choose (1, 2, 3, ...)"`
}

// UseInput applies an item, optionally on a target or with a number.
type UseInput struct {
	SessionInput
	Item   string   `json:"item" jsonschema:"the name of the item to use"`
	Target string   `json:"target,omitempty" jsonschema:"optional thing to use the item on"`
	Number *float64 `json:"number,omitempty" jsonschema:"optional number input for the action"`
}

// InteractInput uses an item directly without a target.
type InteractInput struct {
	SessionInput
	Item string `json:"item" jsonschema:"the name of the item to interact with"`
}

// InventoryInput lists carried items.
type InventoryInput struct {
	SessionInput
}

// HintInput asks for a nudge.
type HintInput struct {
	SessionInput
}

// StatusInput asks for the session summary.
type StatusInput struct {
	SessionInput
}

// ToolResult is the structured output of every tool: the turn's text plus
// the session id to pass back on the next call.
type ToolResult struct {
	SessionID string `json:"session_id" jsonschema:"session id to pass on subsequent calls"`
	Text      string `json:"text" jsonschema:"the game's response"`
}

// handler adapts a per-engine verb function into an SDK tool handler bound
// to the session manager.
func handler[I any](m *SessionManager, sessionID func(I) string, verb func(*engine.Engine, I) string) sdk.ToolHandlerFor[I, ToolResult] {
	return func(ctx context.Context, _ *sdk.CallToolRequest, input I) (*sdk.CallToolResult, ToolResult, error) {
		id, text, err := m.With(sessionID(input), func(eng *engine.Engine) string {
			return verb(eng, input)
		})
		if err != nil {
			return nil, ToolResult{}, err
		}
		result := ToolResult{SessionID: id, Text: text}
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: text}},
		}, result, nil
	}
}

// RegisterTools adds the game tools to an MCP server.
func RegisterTools(server *sdk.Server, m *SessionManager) {
	sdk.AddTool(server, &sdk.Tool{
		Name:        "start_game",
		Description: "Start a new game. Call this first to begin your adventure!",
	}, handler(m, func(in StartGameInput) string { return in.SessionID },
		func(eng *engine.Engine, _ StartGameInput) string { return eng.Start() }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "look",
		Description: "Look around the current room to see the description, exits, items, and characters. Optionally look at something specific.",
	}, handler(m, func(in LookInput) string { return in.SessionID },
		func(eng *engine.Engine, in LookInput) string { return eng.Look(in.Target) }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "go",
		Description: "Move to an adjacent room by direction or name.",
	}, handler(m, func(in GoInput) string { return in.SessionID },
		func(eng *engine.Engine, in GoInput) string { return eng.Go(in.Direction) }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "take",
		Description: "Pick up an item from the current room and add it to your inventory.",
	}, handler(m, func(in TakeInput) string { return in.SessionID },
		func(eng *engine.Engine, in TakeInput) string { return eng.Take(in.Item) }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "examine",
		Description: "Examine an item or person closely for more details.",
	}, handler(m, func(in ExamineInput) string { return in.SessionID },
		func(eng *engine.Engine, in ExamineInput) string { return eng.Examine(in.Target) }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "talk",
		Description: "Talk to a character in the room. First call shows dialogue options, then call again with a number to choose what to say.",
	}, handler(m, func(in TalkInput) string { return in.SessionID },
		func(eng *engine.Engine, in TalkInput) string {
			if in.Option != nil {
				return eng.TalkOption(in.Character, *in.Option)
			}
			return eng.Talk(in.Character)
		}))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "use",
		Description: "Use an item from your inventory. Some items can be used on their own, others on specific targets, and some accept a number input.",
	}, handler(m, func(in UseInput) string { return in.SessionID },
		func(eng *engine.Engine, in UseInput) string { return eng.Use(in.Item, in.Target, in.Number) }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "interact",
		Description: "Interact with an item directly without specifying a target.",
	}, handler(m, func(in InteractInput) string { return in.SessionID },
		func(eng *engine.Engine, in InteractInput) string { return eng.Use(in.Item, "", nil) }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "inventory",
		Description: "Check what items you are carrying.",
	}, handler(m, func(in InventoryInput) string { return in.SessionID },
		func(eng *engine.Engine, _ InventoryInput) string { return eng.Inventory() }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "hint",
		Description: "Get a hint for the next step based on your current progress. Only call this if a user explicitly asks for a hint.",
	}, handler(m, func(in HintInput) string { return in.SessionID },
		func(eng *engine.Engine, _ HintInput) string { return eng.Hint() }))

	sdk.AddTool(server, &sdk.Tool{
		Name:        "status",
		Description: "Get the current game status as a human-readable summary.",
	}, handler(m, func(in StatusInput) string { return in.SessionID },
		func(eng *engine.Engine, _ StatusInput) string { return eng.StatusMessage() }))
}
