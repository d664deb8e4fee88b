// Package effects applies state mutations and drives the trigger cascade.
package effects

import (
	"math"

	"github.com/hollis/fabula/engine/rules"
	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

// Apply mutates the state for one effect. Unknown kinds are ignored.
// Effects never fail: missing numeric slots count as zero, inventory
// additions are idempotent, and removals of absent items are no-ops.
func Apply(e types.Effect, s *types.GameState) {
	switch e.Kind {
	case types.EffectSet:
		state.WritePath(s, e.Path, e.Value)

	case types.EffectAdd:
		state.WritePath(s, e.Path, currentNumber(s, e.Path)+e.Amount)

	case types.EffectSubtract:
		state.WritePath(s, e.Path, currentNumber(s, e.Path)-e.Amount)

	case types.EffectConsume:
		state.WritePath(s, e.Path, false)

	case types.EffectMarkOnce:
		state.MarkOnce(s, e.Path)

	case types.EffectAddItem:
		state.AddInventory(s, e.Item)

	case types.EffectRemoveItem:
		state.RemoveInventory(s, e.Item)
	}
}

// ApplyAll applies a batch of effects in declared order, then runs the
// global trigger cascade once. A nil batch still cascades nothing since
// callers use ApplyAll only when effects exist; triggers that should fire
// from other state changes go through Cascade directly.
func ApplyAll(effects []types.Effect, s *types.GameState, defs *state.Defs) {
	for _, e := range effects {
		Apply(e, s)
	}
	Cascade(s, defs)
}

// Cascade makes a single ordered pass over the global triggers. Each
// trigger whose conditions pass has its pending one-shot marks committed
// and its effects applied directly. Effects of earlier triggers are visible
// to later triggers in the same pass, but the pass never restarts: a
// trigger enabled purely by a later trigger waits for the next cascade.
func Cascade(s *types.GameState, defs *state.Defs) {
	for _, trigger := range defs.Game.GlobalTriggers {
		r := rules.EvalAll(trigger.When, s, defs)
		if !r.Pass {
			continue
		}
		for _, mark := range r.OnceMarks {
			state.MarkOnce(s, mark)
		}
		for _, e := range trigger.Effects {
			Apply(e, s)
		}
	}
}

// currentNumber reads a slot for arithmetic. Unset, boolean, and
// unparseable values all count as zero so add can initialize counters.
func currentNumber(s *types.GameState, path string) float64 {
	v, ok := state.ReadPath(s, path)
	n := types.Coerce(v, ok)
	if math.IsNaN(n) {
		return 0
	}
	return n
}
