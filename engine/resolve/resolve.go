// Package resolve turns player-typed names into definition entities.
package resolve

import (
	"strings"

	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

// VisibleRoomItems lists the items on open display in a room: declared
// there, not yet taken, and without a location override (contained items
// stay hidden until content reveals them some other way).
func VisibleRoomItems(room *types.Room, s *types.GameState) []*types.Item {
	var items []*types.Item
	for i := range room.Items {
		item := &room.Items[i]
		if state.IsTaken(s, item.ID) || item.Location != "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// AllRoomItems lists every untaken item declared in a room, including
// contained ones. Take targets this wider scope so a player who knows an
// item exists can grab it.
func AllRoomItems(room *types.Room, s *types.GameState) []*types.Item {
	var items []*types.Item
	for i := range room.Items {
		item := &room.Items[i]
		if state.IsTaken(s, item.ID) {
			continue
		}
		items = append(items, item)
	}
	return items
}

// InventoryItems maps the carried item ids back to their definitions.
// Ids with no definition are skipped, which only happens with externally
// edited save data.
func InventoryItems(s *types.GameState, defs *state.Defs) []*types.Item {
	var items []*types.Item
	for _, id := range s.InventoryIDs {
		if item, ok := defs.Items[id]; ok {
			items = append(items, item)
		}
	}
	return items
}

// Item searches a candidate list by name. Exact matches on the name or an
// alias win over substring matches, so "key" finds the item named "key"
// even when a "keyring" is declared earlier. All matching is
// case-insensitive; ties go to declaration order.
func Item(items []*types.Item, name string) *types.Item {
	lower := strings.ToLower(name)
	for _, item := range items {
		if strings.ToLower(item.Name) == lower || hasExactAlias(item.Aliases, lower) {
			return item
		}
	}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), lower) || hasAliasSubstring(item.Aliases, lower) {
			return item
		}
	}
	return nil
}

// NPC finds a character in the current room by substring match on name or
// alias.
func NPC(room *types.Room, name string) *types.NPC {
	lower := strings.ToLower(name)
	for i := range room.NPCs {
		npc := &room.NPCs[i]
		if strings.Contains(strings.ToLower(npc.Name), lower) || hasAliasSubstring(npc.Aliases, lower) {
			return npc
		}
	}
	return nil
}

// Exit resolves a direction word to an exit of the current room. Exit
// aliases match exactly first; failing that, the input may name a room
// (by id or name) that one of the exits leads to.
func Exit(room *types.Room, defs *state.Defs, input string) *types.Exit {
	normalized := strings.ToLower(strings.TrimSpace(input))

	for i := range room.Exits {
		if hasExactAlias(room.Exits[i].Aliases, normalized) {
			return &room.Exits[i]
		}
	}

	for _, target := range defs.Game.Rooms {
		if strings.ToLower(target.ID) != normalized && strings.ToLower(target.Name) != normalized {
			continue
		}
		for i := range room.Exits {
			if room.Exits[i].TargetRoomID == target.ID {
				return &room.Exits[i]
			}
		}
		return nil
	}

	return nil
}

func hasExactAlias(aliases []string, lower string) bool {
	for _, a := range aliases {
		if strings.ToLower(a) == lower {
			return true
		}
	}
	return false
}

func hasAliasSubstring(aliases []string, lower string) bool {
	for _, a := range aliases {
		if strings.Contains(strings.ToLower(a), lower) {
			return true
		}
	}
	return false
}
