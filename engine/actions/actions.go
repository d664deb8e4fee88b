// Package actions matches use attempts against an item's declared actions.
package actions

import (
	"github.com/hollis/fabula/engine/rules"
	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

// Match is a selected use action plus the one-shot marks its requirements
// produced. The caller commits the marks only when it goes on to apply
// this action.
type Match struct {
	Action    *types.UseAction
	OnceMarks []string
}

// Find selects the first action of an item that fits the attempt, checking
// in declared order:
//
//   - A target supplied by the player must match the action's targetId
//     exactly; an action with a targetId never fires without its target,
//     and an action without one never fires with a target.
//   - A number supplied by the player must equal the action's declared
//     number, or the action must accept any number. Actions that expect a
//     number never fire without one.
//   - The action's requirements must pass.
//
// Returns nil when nothing fits.
func Find(item *types.Item, target *types.Item, number *float64, s *types.GameState, defs *state.Defs) *Match {
	for i := range item.UseActions {
		action := &item.UseActions[i]

		if action.TargetID != "" {
			if target == nil || target.ID != action.TargetID {
				continue
			}
		} else if target != nil {
			continue
		}

		if number != nil {
			if action.Number != nil && *action.Number != *number {
				continue
			}
			if action.Number == nil && !action.NumberAny {
				continue
			}
		} else if action.Number != nil || action.NumberAny {
			continue
		}

		r := rules.EvalAll(action.Requires, s, defs)
		if !r.Pass {
			continue
		}
		return &Match{Action: action, OnceMarks: r.OnceMarks}
	}
	return nil
}
