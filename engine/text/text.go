// Package text renders plain and fragment-based descriptive text.
package text

import (
	"strconv"
	"strings"

	"github.com/hollis/fabula/engine/rules"
	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

// Render produces the display string for a text value against the current
// state. Placeholder interpolation applies to both plain and fragment text.
func Render(t types.Text, s *types.GameState, defs *state.Defs) string {
	if t.Fragments == nil {
		return Interpolate(t.Plain, s)
	}
	return Interpolate(RenderFragments(t.Fragments, s, defs), s)
}

// RenderFragments selects and joins the visible fragments of a set:
//
//  1. Drop fragments whose conditions fail.
//  2. Keep only the highest-priority tier of the survivors.
//  3. Within the tier, the first fragment of each group wins; ungrouped
//     fragments always show.
//  4. Join with blank lines.
//
// One-shot marks are committed only for fragments that actually display.
// A fragment filtered out by priority or group keeps its gate intact for a
// later render.
func RenderFragments(fragments []types.Fragment, s *types.GameState, defs *state.Defs) string {
	type passing struct {
		fragment *types.Fragment
		marks    []string
	}

	var candidates []passing
	for i := range fragments {
		r := rules.EvalAll(fragments[i].When, s, defs)
		if !r.Pass {
			continue
		}
		candidates = append(candidates, passing{&fragments[i], r.OnceMarks})
	}
	if len(candidates) == 0 {
		return ""
	}

	maxPriority := candidates[0].fragment.Priority
	for _, c := range candidates[1:] {
		if c.fragment.Priority > maxPriority {
			maxPriority = c.fragment.Priority
		}
	}

	usedGroups := make(map[string]bool)
	var lines []string
	for _, c := range candidates {
		if c.fragment.Priority != maxPriority {
			continue
		}
		if g := c.fragment.Group; g != "" {
			if usedGroups[g] {
				continue
			}
			usedGroups[g] = true
		}
		lines = append(lines, c.fragment.Say)
		for _, mark := range c.marks {
			state.MarkOnce(s, mark)
		}
	}

	return strings.Join(lines, "\n\n")
}

// Interpolate substitutes placeholders in display text. Only {turns} is
// recognized; anything else passes through literally.
func Interpolate(text string, s *types.GameState) string {
	if !strings.Contains(text, "{turns}") {
		return text
	}
	return strings.ReplaceAll(text, "{turns}", strconv.Itoa(s.TurnCount))
}
