// Package engine is the interpreter façade for declarative adventure
// content. Each verb method advances the session by one turn and returns
// the display text for that turn; all world behavior comes from the loaded
// definition's conditions, effects, and triggers rather than from code.
package engine

import (
	"fmt"
	"strings"

	"github.com/hollis/fabula/engine/actions"
	"github.com/hollis/fabula/engine/effects"
	"github.com/hollis/fabula/engine/resolve"
	"github.com/hollis/fabula/engine/rules"
	"github.com/hollis/fabula/engine/save"
	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/engine/text"
	"github.com/hollis/fabula/types"
)

// Options configure engine construction.
type Options struct {
	// SkipValidation trusts the definition as-is. Loaders that already
	// validated the content set this to avoid a second pass.
	SkipValidation bool
}

// Engine binds an immutable game definition to one mutable session.
// Methods are not safe for concurrent use; callers that share an engine
// across goroutines serialize access themselves.
type Engine struct {
	defs  *state.Defs
	state *types.GameState
}

// New creates an engine with a fresh session. The definition is validated
// unless opts.SkipValidation is set; the starting room is checked either
// way because nothing works without it.
func New(def *types.GameDefinition, opts Options) (*Engine, error) {
	defs := state.NewDefs(def)
	if !opts.SkipValidation {
		if err := Validate(defs); err != nil {
			return nil, err
		}
	} else if _, ok := defs.Rooms[def.StartingRoom]; !ok {
		return nil, fmt.Errorf("starting room %q not found in rooms", def.StartingRoom)
	}
	return &Engine{defs: defs, state: state.NewState(defs)}, nil
}

// Restore creates an engine whose session is rebuilt from snapshot bytes.
func Restore(def *types.GameDefinition, snapshot []byte, opts Options) (*Engine, error) {
	e, err := New(def, opts)
	if err != nil {
		return nil, err
	}
	if err := e.LoadSnapshot(snapshot); err != nil {
		return nil, err
	}
	return e, nil
}

// Defs exposes the indexed definition.
func (e *Engine) Defs() *state.Defs { return e.defs }

// State exposes the mutable session state.
func (e *Engine) State() *types.GameState { return e.state }

// Snapshot serializes the session to JSON.
func (e *Engine) Snapshot() ([]byte, error) {
	return save.Snapshot(e.state)
}

// LoadSnapshot replaces the session with one restored from JSON bytes.
func (e *Engine) LoadSnapshot(data []byte) error {
	s, err := save.Restore(e.defs, data)
	if err != nil {
		return err
	}
	e.state = s
	return nil
}

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool { return e.state.GameOver }

// Won reports whether the session ended in victory.
func (e *Engine) Won() bool { return e.state.Won }

// Start resets the session and returns the opening text: the intro
// followed by the starting room description. The starting room counts as
// visited immediately.
func (e *Engine) Start() string {
	e.state = state.NewState(e.defs)
	state.MarkVisited(e.state, e.state.CurrentRoomID)

	intro := e.render(e.defs.Game.IntroText)
	return intro + "\n\n" + e.describeCurrentRoom()
}

// Look describes the current room, or a named item or character. An empty
// target re-describes the room.
func (e *Engine) Look(target string) string {
	e.incrementTurn()
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}

	if target == "" {
		return e.describeCurrentRoom()
	}

	if item := e.findItemNearby(target); item != nil {
		return e.describeItem(item)
	}
	if npc := resolve.NPC(e.currentRoom(), target); npc != nil {
		return npc.Description
	}
	return fmt.Sprintf("You don't see any %q here.", target)
}

// Examine inspects a named item or character. It reads the same scope as
// Look but reports failure in examine terms.
func (e *Engine) Examine(target string) string {
	e.incrementTurn()
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}

	if item := e.findItemNearby(target); item != nil {
		return e.describeItem(item)
	}
	if npc := resolve.NPC(e.currentRoom(), target); npc != nil {
		return npc.Description
	}
	return fmt.Sprintf("You don't see any %q to examine.", target)
}

// Go moves through an exit named by direction word, exit alias, or
// destination room name. Blocked exits report their blockedMessage or a
// generic refusal; moving marks the destination visited and describes it.
func (e *Engine) Go(direction string) string {
	e.incrementTurn()
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}

	exit := resolve.Exit(e.currentRoom(), e.defs, direction)
	if exit == nil {
		return fmt.Sprintf("You can't go %s from here.", direction)
	}

	if msg, ok := e.exitBlocked(exit); !ok {
		if msg != "" {
			return msg
		}
		return fmt.Sprintf("You can't go %s right now.", direction)
	}

	e.state.CurrentRoomID = exit.TargetRoomID
	state.MarkVisited(e.state, exit.TargetRoomID)
	return e.describeCurrentRoom()
}

// Take picks up an item from the current room. Containment does not hide
// items from Take: a player who knows a contained item's name can take it.
// On success the item's onTake effects run (or, lacking any, the global
// trigger cascade) and the onTakeText or a default line is returned.
func (e *Engine) Take(itemName string) string {
	e.incrementTurn()
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}

	item := resolve.Item(resolve.AllRoomItems(e.currentRoom(), e.state), itemName)
	if item == nil {
		return fmt.Sprintf("You don't see any %q here to take.", itemName)
	}

	if !item.Takeable {
		if !item.TakeBlockedText.IsZero() {
			return e.render(item.TakeBlockedText)
		}
		return fmt.Sprintf("You can't take the %s.", item.Name)
	}

	if len(item.TakeWhen) > 0 {
		if r := rules.EvalAll(item.TakeWhen, e.state, e.defs); !r.Pass {
			if !item.TakeBlockedText.IsZero() {
				return e.render(item.TakeBlockedText)
			}
			return fmt.Sprintf("You can't take the %s right now.", item.Name)
		}
	}

	state.AddInventory(e.state, item.ID)

	if len(item.OnTake) > 0 {
		effects.ApplyAll(item.OnTake, e.state, e.defs)
	} else {
		effects.Cascade(e.state, e.defs)
	}

	if !item.OnTakeText.IsZero() {
		return e.render(item.OnTakeText)
	}
	return fmt.Sprintf("You pick up the %s.", item.Name)
}

// Talk opens a conversation with a character, listing the dialogue options
// whose conditions currently pass as a numbered menu.
func (e *Engine) Talk(characterName string) string {
	e.incrementTurn()
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}

	npc := resolve.NPC(e.currentRoom(), characterName)
	if npc == nil {
		return fmt.Sprintf("There's no one called %q here to talk to.", characterName)
	}

	available := e.availableDialogue(npc)
	if len(available) == 0 {
		return fmt.Sprintf("%s has nothing more to say.", npc.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You approach %s.\n\n", npc.Name)
	b.WriteString("What would you like to say?\n\n")
	for i, line := range available {
		fmt.Fprintf(&b, "%d. %q\n", i+1, line.PlayerLine)
	}
	fmt.Fprintf(&b, "\n(Use: talk %s [number] to choose)", strings.ToLower(characterName))
	return b.String()
}

// TalkOption speaks a numbered line from a character's current menu. The
// numbering is 1-based over the options whose conditions pass right now,
// so a menu can renumber between turns as the world changes. Winning mid
// conversation appends the victory coda.
func (e *Engine) TalkOption(characterName string, option int) string {
	e.incrementTurn()
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}

	npc := resolve.NPC(e.currentRoom(), characterName)
	if npc == nil {
		return fmt.Sprintf("There's no one called %q here to talk to.", characterName)
	}

	available := e.availableDialogue(npc)
	if option < 1 || option > len(available) {
		return fmt.Sprintf("Invalid dialogue option. Please choose a number from 1-%d.", len(available))
	}
	line := available[option-1]

	response := fmt.Sprintf("You: %q\n\n%s", line.PlayerLine, e.render(line.Response))

	if len(line.Effects) > 0 {
		effects.ApplyAll(line.Effects, e.state, e.defs)
	}

	if e.state.Won {
		response += fmt.Sprintf("\n\nYou feel a quiet certainty settle in.\n\nTurns taken: %d", e.state.TurnCount)
	}
	return response
}

// Use applies an item, optionally on a target and with a number (dials,
// keypads). The item resolves with exact matches favored across room and
// inventory before falling back to fuzzy matching; if no action of the
// item fits, the pairing retries with item and target swapped so "use
// door with key" works however the player phrases it. A use that flips
// the session to won returns the win message instead of the action's
// response.
func (e *Engine) Use(itemName, targetName string, number *float64) string {
	e.incrementTurn()
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}

	room := e.currentRoom()
	roomItems := resolve.VisibleRoomItems(room, e.state)
	invItems := resolve.InventoryItems(e.state, e.defs)

	item := exactMatch(roomItems, itemName)
	if item == nil {
		item = exactMatch(invItems, itemName)
	}
	if item == nil {
		item = resolve.Item(invItems, itemName)
	}
	if item == nil {
		item = resolve.Item(roomItems, itemName)
	}
	if item == nil {
		return fmt.Sprintf("You don't see any %q to use.", itemName)
	}

	var target *types.Item
	if targetName != "" {
		target = resolve.Item(roomItems, targetName)
		if target == nil {
			target = resolve.Item(invItems, targetName)
		}
	}

	wasWon := e.state.Won
	match := actions.Find(item, target, number, e.state, e.defs)
	if match == nil && target != nil {
		match = actions.Find(target, item, number, e.state, e.defs)
	}
	if match != nil {
		for _, mark := range match.OnceMarks {
			state.MarkOnce(e.state, mark)
		}
		if len(match.Action.Effects) > 0 {
			effects.ApplyAll(match.Action.Effects, e.state, e.defs)
		}
		e.applyRoomTriggers(e.currentRoom().Triggers)
		response := e.render(match.Action.Response)
		if !wasWon && e.state.Won {
			return e.render(e.defs.Game.WinMessage)
		}
		return response
	}

	if targetName != "" {
		return fmt.Sprintf("You're not sure how to use the %s on %s.", item.Name, targetName)
	}
	return fmt.Sprintf("You're not sure how to use the %s.", item.Name)
}

// Inventory lists carried items. It costs no turn.
func (e *Engine) Inventory() string {
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}
	items := resolve.InventoryItems(e.state, e.defs)
	if len(items) == 0 {
		return "You're not carrying anything."
	}
	var b strings.Builder
	b.WriteString("You are carrying:")
	for _, item := range items {
		b.WriteString("\n- ")
		b.WriteString(item.Name)
	}
	return b.String()
}

// Hint returns the first hint whose conditions pass, in declared order.
// Hints keep working after the game ends.
func (e *Engine) Hint() string {
	e.incrementTurn()
	for _, hint := range e.defs.Game.Hints {
		if r := rules.EvalAll(hint.When, e.state, e.defs); r.Pass {
			return e.render(hint.Text)
		}
	}
	return "No hint comes to mind right now."
}

// Status is the structured session summary for programmatic callers.
type Status struct {
	Room      string                  `json:"room"`
	RoomID    string                  `json:"roomId"`
	Inventory []string                `json:"inventory"`
	Turns     int                     `json:"turns"`
	GameOver  bool                    `json:"gameOver"`
	Won       bool                    `json:"won"`
	Flags     map[string]types.Scalar `json:"flags"`
}

// Status reports the session summary. It costs no turn.
func (e *Engine) Status() Status {
	names := []string{}
	for _, item := range resolve.InventoryItems(e.state, e.defs) {
		names = append(names, item.Name)
	}
	return Status{
		Room:      e.currentRoom().Name,
		RoomID:    e.state.CurrentRoomID,
		Inventory: names,
		Turns:     e.state.TurnCount,
		GameOver:  e.state.GameOver,
		Won:       e.state.Won,
		Flags:     e.state.Flags,
	}
}

// StatusMessage is the human-readable form of Status. A finished session
// shows the win message instead.
func (e *Engine) StatusMessage() string {
	if e.state.GameOver {
		return e.render(e.defs.Game.WinMessage)
	}
	names := make([]string, 0, len(e.state.InventoryIDs))
	for _, item := range resolve.InventoryItems(e.state, e.defs) {
		names = append(names, item.Name)
	}
	inventory := "empty"
	if len(names) > 0 {
		inventory = strings.Join(names, ", ")
	}
	won := "no"
	if e.state.Won {
		won = "yes"
	}
	return strings.Join([]string{
		fmt.Sprintf("Location: %s", e.currentRoom().Name),
		fmt.Sprintf("Turns: %d", e.state.TurnCount),
		fmt.Sprintf("Inventory: %s", inventory),
		fmt.Sprintf("Won: %s", won),
	}, "\n")
}

// incrementTurn advances the turn counter. Turns stop accruing once the
// game is over.
func (e *Engine) incrementTurn() {
	if e.state.GameOver {
		return
	}
	e.state.TurnCount++
}

func (e *Engine) currentRoom() *types.Room {
	return e.defs.CurrentRoom(e.state)
}

func (e *Engine) render(t types.Text) string {
	return text.Render(t, e.state, e.defs)
}

// findItemNearby searches the current room (contained items included) and
// then the inventory.
func (e *Engine) findItemNearby(name string) *types.Item {
	if item := resolve.Item(resolve.AllRoomItems(e.currentRoom(), e.state), name); item != nil {
		return item
	}
	return resolve.Item(resolve.InventoryItems(e.state, e.defs), name)
}

func (e *Engine) describeItem(item *types.Item) string {
	return fmt.Sprintf("** %s **\n\n%s", item.Name, e.render(item.ExamineText))
}

// describeCurrentRoom runs the room's own triggers, then composes the room
// heading, description, visible items, characters, and exit list. Blocked
// exits are labeled rather than hidden so the player knows where to push.
func (e *Engine) describeCurrentRoom() string {
	room := e.currentRoom()
	e.applyRoomTriggers(room.Triggers)

	var b strings.Builder
	fmt.Fprintf(&b, "** %s **\n\n%s", room.Name, e.render(room.Description))

	if items := resolve.VisibleRoomItems(room, e.state); len(items) > 0 {
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		fmt.Fprintf(&b, "\n\nYou see: %s", strings.Join(names, ", "))
	}

	if len(room.NPCs) > 0 {
		names := make([]string, len(room.NPCs))
		for i := range room.NPCs {
			names[i] = room.NPCs[i].Name
		}
		fmt.Fprintf(&b, "\n\nPresent: %s", strings.Join(names, ", "))
	}

	labels := make([]string, len(room.Exits))
	for i := range room.Exits {
		exit := &room.Exits[i]
		name := exit.TargetRoomID
		if target := e.defs.Room(exit.TargetRoomID); target != nil {
			name = target.Name
		}
		if e.exitLooksBlocked(exit) {
			name += " (blocked)"
		}
		labels[i] = name
	}
	if len(labels) > 0 {
		fmt.Fprintf(&b, "\n\nExits: %s", strings.Join(labels, ", "))
	} else {
		b.WriteString("\n\nExits: none")
	}
	return b.String()
}

// exitBlocked checks an exit for traversal. The boolean is true when the
// exit is open; otherwise the string carries the rendered blockedMessage,
// possibly empty.
func (e *Engine) exitBlocked(exit *types.Exit) (string, bool) {
	if !e.exitLooksBlocked(exit) {
		return "", true
	}
	if !exit.BlockedMessage.IsZero() {
		return e.render(exit.BlockedMessage), false
	}
	return "", false
}

// exitLooksBlocked is the display-only variant used by the exit list.
func (e *Engine) exitLooksBlocked(exit *types.Exit) bool {
	if len(exit.Requires) > 0 {
		if r := rules.EvalAll(exit.Requires, e.state, e.defs); !r.Pass {
			return true
		}
	}
	return exit.Locked && !(exit.RequiredItem != "" && state.HasItem(e.state, exit.RequiredItem))
}

// applyRoomTriggers fires each passing room trigger's effects, each batch
// cascading the global triggers. Gate marks from the trigger conditions
// themselves are probe-only here.
func (e *Engine) applyRoomTriggers(triggers []types.Trigger) {
	for _, trigger := range triggers {
		if r := rules.EvalAll(trigger.When, e.state, e.defs); r.Pass {
			effects.ApplyAll(trigger.Effects, e.state, e.defs)
		}
	}
}

// availableDialogue filters a character's lines to those whose conditions
// pass. Gates are probed, not consumed; a once-gated line keeps appearing
// until it is actually spoken.
func (e *Engine) availableDialogue(npc *types.NPC) []*types.DialogueLine {
	var lines []*types.DialogueLine
	for i := range npc.Dialogue {
		if r := rules.EvalAll(npc.Dialogue[i].When, e.state, e.defs); r.Pass {
			lines = append(lines, &npc.Dialogue[i])
		}
	}
	return lines
}

// exactMatch finds an item by exact name or alias only, no substring
// fallback.
func exactMatch(items []*types.Item, name string) *types.Item {
	lower := strings.ToLower(name)
	for _, item := range items {
		if strings.ToLower(item.Name) == lower {
			return item
		}
		for _, alias := range item.Aliases {
			if strings.ToLower(alias) == lower {
				return item
			}
		}
	}
	return nil
}
