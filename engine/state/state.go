// Package state holds the indexed view of a game definition, the session
// state constructor, and the path resolver that maps string paths to
// readable/writable slots.
package state

import (
	"strings"

	"github.com/hollis/fabula/types"
)

// Defs is the immutable definition plus lookup indexes built once at engine
// construction. Rooms own their items and NPCs; the indexes only point into
// the definition.
type Defs struct {
	Game  *types.GameDefinition
	Rooms map[string]*types.Room
	Items map[string]*types.Item
}

// NewDefs indexes a game definition. Rooms are indexed by id; items by id
// across all rooms, first declaration winning (ids are unique in validated
// content).
func NewDefs(def *types.GameDefinition) *Defs {
	defs := &Defs{
		Game:  def,
		Rooms: make(map[string]*types.Room, len(def.Rooms)),
		Items: make(map[string]*types.Item),
	}
	for i := range def.Rooms {
		room := &def.Rooms[i]
		if _, ok := defs.Rooms[room.ID]; !ok {
			defs.Rooms[room.ID] = room
		}
		for j := range room.Items {
			item := &room.Items[j]
			if _, ok := defs.Items[item.ID]; !ok {
				defs.Items[item.ID] = item
			}
		}
	}
	return defs
}

// Room returns the room with the given id, or nil.
func (d *Defs) Room(id string) *types.Room { return d.Rooms[id] }

// CurrentRoom returns the room the player is in. The room always exists in
// validated content; a nil return means the state was corrupted externally.
func (d *Defs) CurrentRoom(s *types.GameState) *types.Room {
	return d.Rooms[s.CurrentRoomID]
}

// NewState creates a fresh session state seeded from the definition's
// starting room and initial flags.
func NewState(defs *Defs) *types.GameState {
	flags := make(map[string]types.Scalar, len(defs.Game.InitialFlags))
	for k, v := range defs.Game.InitialFlags {
		flags[k] = v
	}
	return &types.GameState{
		CurrentRoomID: defs.Game.StartingRoom,
		InventoryIDs:  []string{},
		TakenItemIDs:  []string{},
		Flags:         flags,
		VisitedRooms:  []string{},
		Once:          []string{},
	}
}

// HasItem reports inventory membership by item id.
func HasItem(s *types.GameState, itemID string) bool {
	return contains(s.InventoryIDs, itemID)
}

// IsTaken reports whether an item has been removed from its origin room,
// whether or not it is still carried.
func IsTaken(s *types.GameState, itemID string) bool {
	return contains(s.TakenItemIDs, itemID)
}

// HasOnce reports whether a one-shot gate has been consumed.
func HasOnce(s *types.GameState, path string) bool {
	return contains(s.Once, path)
}

// MarkOnce consumes a one-shot gate. Marking twice is a no-op.
func MarkOnce(s *types.GameState, path string) {
	if !HasOnce(s, path) {
		s.Once = append(s.Once, path)
	}
}

// MarkVisited records a room visit exactly once.
func MarkVisited(s *types.GameState, roomID string) {
	if !contains(s.VisitedRooms, roomID) {
		s.VisitedRooms = append(s.VisitedRooms, roomID)
	}
}

// GetFlag returns the value of a flag. Unset flags return (nil, false).
func GetFlag(s *types.GameState, name string) (types.Scalar, bool) {
	v, ok := s.Flags[name]
	return v, ok
}

// SetFlag sets a flag value.
func SetFlag(s *types.GameState, name string, value types.Scalar) {
	s.Flags[name] = value
}

// ReadPath resolves a path to its current value. Built-in paths take
// precedence over flag lookups; any other path is a flag-map key with an
// optional "flags." prefix stripped first, so "DOOR_UNLOCKED" and
// "flags.DOOR_UNLOCKED" address the same slot. "event.*" paths are ordinary
// flags used by convention for one-shot markers.
func ReadPath(s *types.GameState, path string) (types.Scalar, bool) {
	switch path {
	case "room", "room.id":
		return s.CurrentRoomID, true
	case "won":
		return s.Won, true
	case "gameOver":
		return s.GameOver, true
	case "turnCount":
		return float64(s.TurnCount), true
	}
	return GetFlag(s, strings.TrimPrefix(path, "flags."))
}

// WritePath stores a value at a path with the same built-in precedence as
// ReadPath. Writes to "won" and "gameOver" coerce through truthiness; a
// write to "room" moves the player (content never does this, but the
// built-in path set stays symmetric for read and write).
func WritePath(s *types.GameState, path string, value types.Scalar) {
	switch path {
	case "room", "room.id":
		if id, ok := value.(string); ok {
			s.CurrentRoomID = id
		}
		return
	case "won":
		s.Won = types.Truthy(value, true)
		return
	case "gameOver":
		s.GameOver = types.Truthy(value, true)
		return
	}
	SetFlag(s, strings.TrimPrefix(path, "flags."), value)
}

// AddInventory puts an item into the inventory and the taken set, skipping
// duplicates in both.
func AddInventory(s *types.GameState, itemID string) {
	if !contains(s.InventoryIDs, itemID) {
		s.InventoryIDs = append(s.InventoryIDs, itemID)
	}
	if !contains(s.TakenItemIDs, itemID) {
		s.TakenItemIDs = append(s.TakenItemIDs, itemID)
	}
}

// RemoveInventory drops an item from the inventory only. The taken set is
// untouched: the item stays permanently gone from its origin room.
func RemoveInventory(s *types.GameState, itemID string) {
	for i, id := range s.InventoryIDs {
		if id == itemID {
			s.InventoryIDs = append(s.InventoryIDs[:i], s.InventoryIDs[i+1:]...)
			return
		}
	}
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
