// Package save implements JSON serialization and restoration of session
// state. The wire form is the GameState struct itself, so a snapshot taken
// by one process restores in another (or in the reference web client)
// without translation.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

// Snapshot serializes session state to JSON bytes.
func Snapshot(s *types.GameState) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Restore builds a session state from snapshot bytes. Missing fields fall
// back to fresh-session defaults, so snapshots written by older content
// revisions still load: the room defaults to the starting room, collections
// to empty, and flags merge over the definition's initial flags (saved
// values win).
func Restore(defs *state.Defs, data []byte) (*types.GameState, error) {
	var parsed types.GameState
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	s := state.NewState(defs)
	if parsed.CurrentRoomID != "" {
		// A saved room the definition no longer has would leave every
		// subsequent verb without a current room.
		if _, ok := defs.Rooms[parsed.CurrentRoomID]; !ok {
			return nil, fmt.Errorf("snapshot room %q not found in game definition", parsed.CurrentRoomID)
		}
		s.CurrentRoomID = parsed.CurrentRoomID
	}
	if parsed.InventoryIDs != nil {
		s.InventoryIDs = parsed.InventoryIDs
	}
	if parsed.TakenItemIDs != nil {
		s.TakenItemIDs = parsed.TakenItemIDs
	}
	for k, v := range parsed.Flags {
		s.Flags[k] = v
	}
	if parsed.VisitedRooms != nil {
		s.VisitedRooms = parsed.VisitedRooms
	}
	if parsed.Once != nil {
		s.Once = parsed.Once
	}
	s.GameOver = parsed.GameOver
	s.Won = parsed.Won
	s.TurnCount = parsed.TurnCount
	return s, nil
}
