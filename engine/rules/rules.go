// Package rules evaluates condition trees against session state.
//
// Evaluation is pure: nothing is written to the state. One-shot gates that
// would fire are reported back as pending marks in the Result, and the caller
// decides whether to commit them. This is what lets an engine evaluate the
// same gated content several times per turn (ranking fragments, probing use
// actions) and only consume the gates that actually took effect.
package rules

import (
	"strings"

	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

// Result is the outcome of evaluating a condition or condition list.
// OnceMarks lists the one-shot gate paths that passed and are waiting to be
// committed with state.MarkOnce.
type Result struct {
	Pass      bool
	OnceMarks []string
}

// Eval evaluates a single condition. Unknown kinds fail closed.
func Eval(c types.Condition, s *types.GameState, defs *state.Defs) Result {
	switch c.Kind {
	case types.CondEq:
		v, ok := state.ReadPath(s, c.Path)
		return Result{Pass: ok && types.ScalarEqual(v, c.Value)}

	case types.CondNe:
		v, ok := state.ReadPath(s, c.Path)
		return Result{Pass: !ok || !types.ScalarEqual(v, c.Value)}

	case types.CondGt:
		return Result{Pass: pathNumber(s, c.Path) > c.Number}

	case types.CondGte:
		return Result{Pass: pathNumber(s, c.Path) >= c.Number}

	case types.CondLt:
		return Result{Pass: pathNumber(s, c.Path) < c.Number}

	case types.CondLte:
		return Result{Pass: pathNumber(s, c.Path) <= c.Number}

	case types.CondTruthy:
		v, ok := state.ReadPath(s, c.Path)
		return Result{Pass: types.Truthy(v, ok)}

	case types.CondFalsy:
		v, ok := state.ReadPath(s, c.Path)
		return Result{Pass: !types.Truthy(v, ok)}

	case types.CondHas:
		return Result{Pass: state.HasItem(s, c.Item)}

	case types.CondLacks:
		return Result{Pass: !state.HasItem(s, c.Item)}

	case types.CondPresent:
		return Result{Pass: objectPresent(s, defs, c.Path)}

	case types.CondAbsent:
		return Result{Pass: !objectPresent(s, defs, c.Path)}

	case types.CondIsAt:
		return Result{Pass: itemAt(s, defs, c.Item, c.Location)}

	case types.CondOnce:
		if state.HasOnce(s, c.Path) {
			return Result{Pass: false}
		}
		return Result{Pass: true, OnceMarks: []string{c.Path}}

	case types.CondAnd:
		return EvalAll(c.Children, s, defs)

	case types.CondOr:
		for _, child := range c.Children {
			if r := Eval(child, s, defs); r.Pass {
				return r
			}
		}
		return Result{Pass: false}

	case types.CondNot:
		if c.Inner == nil {
			return Result{Pass: true}
		}
		// Marks never escape a negation: a gate probed under not is
		// not consumed either way.
		return Result{Pass: !Eval(*c.Inner, s, defs).Pass}

	default:
		return Result{Pass: false}
	}
}

// EvalAll evaluates a condition list with AND logic. The empty list passes.
// Pending marks accumulate in order across passing conditions and are
// discarded entirely when any condition fails.
func EvalAll(conditions []types.Condition, s *types.GameState, defs *state.Defs) Result {
	var marks []string
	for _, c := range conditions {
		r := Eval(c, s, defs)
		if !r.Pass {
			return Result{Pass: false}
		}
		marks = append(marks, r.OnceMarks...)
	}
	return Result{Pass: true, OnceMarks: marks}
}

// pathNumber reads a path and coerces to a number for ordered comparisons.
// Unset paths coerce to NaN, so every ordered comparison against them fails.
func pathNumber(s *types.GameState, path string) float64 {
	v, ok := state.ReadPath(s, path)
	return types.Coerce(v, ok)
}

// objectPresent reports whether the item named by the last dot-segment of
// path is declared in the current room and has not been taken. Presence is
// about the original furnishings of the room, so inventory and location
// overrides do not enter into it.
func objectPresent(s *types.GameState, defs *state.Defs, path string) bool {
	room := defs.CurrentRoom(s)
	if room == nil {
		return false
	}
	itemID := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		itemID = path[i+1:]
	}
	for i := range room.Items {
		if room.Items[i].ID == itemID {
			return !state.IsTaken(s, itemID)
		}
	}
	return false
}

// itemAt reports whether an item declared in the current room sits at the
// given location id. An item's effective location is its declared location
// override, or the room itself. Taken and carried items are nowhere.
func itemAt(s *types.GameState, defs *state.Defs, itemID, locationID string) bool {
	room := defs.CurrentRoom(s)
	if room == nil {
		return false
	}
	var item *types.Item
	for i := range room.Items {
		if room.Items[i].ID == itemID {
			item = &room.Items[i]
			break
		}
	}
	if item == nil {
		return false
	}
	if state.IsTaken(s, itemID) || state.HasItem(s, itemID) {
		return false
	}
	loc := item.Location
	if loc == "" {
		loc = room.ID
	}
	return loc == locationID
}
