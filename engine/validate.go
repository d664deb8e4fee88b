package engine

import (
	"fmt"
	"strings"

	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

// ValidationError collects every referential problem found in a definition
// so content authors fix them in one round instead of one per run.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid game definition with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Validate checks an indexed definition for referential integrity. It
// returns a *ValidationError listing everything wrong, or nil.
func Validate(defs *state.Defs) error {
	ve := &ValidationError{}
	def := defs.Game

	if def.Name == "" {
		ve.Errors = append(ve.Errors, "game name is required")
	}

	if def.StartingRoom == "" {
		ve.Errors = append(ve.Errors, "startingRoom is required")
	} else if _, ok := defs.Rooms[def.StartingRoom]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"starting room %q not found in rooms", def.StartingRoom))
	}

	roomIDs := map[string]bool{}
	itemIDs := map[string]bool{}
	for _, room := range def.Rooms {
		if room.ID == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("room %q has no id", room.Name))
		}
		if roomIDs[room.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate room id %q", room.ID))
		}
		roomIDs[room.ID] = true

		for _, item := range room.Items {
			if itemIDs[item.ID] {
				ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate item id %q", item.ID))
			}
			itemIDs[item.ID] = true
		}
	}

	for _, room := range def.Rooms {
		for _, exit := range room.Exits {
			if _, ok := defs.Rooms[exit.TargetRoomID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q exit targets undefined room %q", room.ID, exit.TargetRoomID))
			}
			if exit.RequiredItem != "" {
				if _, ok := defs.Items[exit.RequiredItem]; !ok {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"room %q exit requires undefined item %q", room.ID, exit.RequiredItem))
				}
			}
			if len(exit.Aliases) == 0 {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"room %q exit to %q has no aliases and is only reachable by room name",
					room.ID, exit.TargetRoomID))
			}
		}

		for _, item := range room.Items {
			validateItem(&item, &room, defs, ve)
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// validateItem checks references local to one item: a location override
// must name a sibling item in the same room, and every use action target
// must be a defined item.
func validateItem(item *types.Item, room *types.Room, defs *state.Defs, ve *ValidationError) {
	if item.Location != "" {
		found := item.Location == room.ID
		for _, sibling := range room.Items {
			if sibling.ID == item.Location {
				found = true
				break
			}
		}
		if !found {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"item %q location %q is neither its room nor a sibling item", item.ID, item.Location))
		}
	}

	for _, action := range item.UseActions {
		if action.TargetID == "" {
			continue
		}
		if _, ok := defs.Items[action.TargetID]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"item %q use action targets undefined item %q", item.ID, action.TargetID))
		}
	}
}
