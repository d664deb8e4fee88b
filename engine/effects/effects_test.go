package effects

import (
	"testing"

	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

func effectDefs(triggers ...types.Trigger) *state.Defs {
	return state.NewDefs(&types.GameDefinition{
		Name:           "Effect Test",
		StartingRoom:   "hall",
		GlobalTriggers: triggers,
		Rooms: []types.Room{
			{ID: "hall", Name: "Hall", Items: []types.Item{{ID: "key", Name: "Key"}}},
		},
	})
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*types.GameState)
		effect types.Effect
		check  func(*testing.T, *types.GameState)
	}{
		{
			name:   "set",
			effect: types.Set("MOOD", "calm"),
			check: func(t *testing.T, s *types.GameState) {
				if v, _ := state.GetFlag(s, "MOOD"); v != "calm" {
					t.Errorf("MOOD = %v", v)
				}
			},
		},
		{
			name:   "add initializes missing to zero",
			effect: types.Add("SCORE", 3),
			check: func(t *testing.T, s *types.GameState) {
				if v, _ := state.GetFlag(s, "SCORE"); v != float64(3) {
					t.Errorf("SCORE = %v", v)
				}
			},
		},
		{
			name:   "add treats garbage as zero",
			setup:  func(s *types.GameState) { state.SetFlag(s, "SCORE", "lots") },
			effect: types.Add("SCORE", 2),
			check: func(t *testing.T, s *types.GameState) {
				if v, _ := state.GetFlag(s, "SCORE"); v != float64(2) {
					t.Errorf("SCORE = %v", v)
				}
			},
		},
		{
			name:   "subtract",
			setup:  func(s *types.GameState) { state.SetFlag(s, "FUEL", float64(5)) },
			effect: types.Subtract("FUEL", 1.5),
			check: func(t *testing.T, s *types.GameState) {
				if v, _ := state.GetFlag(s, "FUEL"); v != float64(3.5) {
					t.Errorf("FUEL = %v", v)
				}
			},
		},
		{
			name:   "consume forces false",
			setup:  func(s *types.GameState) { state.SetFlag(s, "POTION", float64(2)) },
			effect: types.Consume("POTION"),
			check: func(t *testing.T, s *types.GameState) {
				if v, _ := state.GetFlag(s, "POTION"); v != false {
					t.Errorf("POTION = %v", v)
				}
			},
		},
		{
			name:   "markOnce",
			effect: types.MarkOnce("rang_bell"),
			check: func(t *testing.T, s *types.GameState) {
				if !state.HasOnce(s, "rang_bell") {
					t.Error("gate not consumed")
				}
			},
		},
		{
			name:   "addItem",
			effect: types.AddItem("key"),
			check: func(t *testing.T, s *types.GameState) {
				if !state.HasItem(s, "key") || !state.IsTaken(s, "key") {
					t.Error("key not added")
				}
			},
		},
		{
			name:   "removeItem keeps taken",
			setup:  func(s *types.GameState) { state.AddInventory(s, "key") },
			effect: types.RemoveItem("key"),
			check: func(t *testing.T, s *types.GameState) {
				if state.HasItem(s, "key") {
					t.Error("key still carried")
				}
				if !state.IsTaken(s, "key") {
					t.Error("taken set should survive removal")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewState(effectDefs())
			if tt.setup != nil {
				tt.setup(s)
			}
			Apply(tt.effect, s)
			tt.check(t, s)
		})
	}
}

func TestAddItemIdempotent(t *testing.T) {
	s := state.NewState(effectDefs())
	Apply(types.AddItem("key"), s)
	Apply(types.AddItem("key"), s)
	if len(s.InventoryIDs) != 1 || len(s.TakenItemIDs) != 1 {
		t.Errorf("inventory %v taken %v", s.InventoryIDs, s.TakenItemIDs)
	}
}

func TestApplyAllCascadesTriggers(t *testing.T) {
	defs := effectDefs(types.Trigger{
		ID:      "win_on_flag",
		When:    []types.Condition{types.TruthyCond("LEVER_PULLED")},
		Effects: []types.Effect{types.Set("won", true), types.Set("gameOver", true)},
	})
	s := state.NewState(defs)

	ApplyAll([]types.Effect{types.Set("LEVER_PULLED", true)}, s, defs)
	if !s.Won || !s.GameOver {
		t.Errorf("won=%v gameOver=%v", s.Won, s.GameOver)
	}
}

func TestCascadeSinglePass(t *testing.T) {
	// The second trigger enables the first; a single ordered pass must
	// fire the second but leave the first for a later cascade.
	defs := effectDefs(
		types.Trigger{
			ID:      "late",
			When:    []types.Condition{types.TruthyCond("B")},
			Effects: []types.Effect{types.Set("SAW_B", true)},
		},
		types.Trigger{
			ID:      "early",
			When:    []types.Condition{types.TruthyCond("A")},
			Effects: []types.Effect{types.Set("B", true)},
		},
	)
	s := state.NewState(defs)
	state.SetFlag(s, "A", true)

	Cascade(s, defs)
	if v, _ := state.GetFlag(s, "B"); v != true {
		t.Fatal("early trigger did not fire")
	}
	if _, ok := state.GetFlag(s, "SAW_B"); ok {
		t.Error("pass restarted; late trigger should wait for the next cascade")
	}

	Cascade(s, defs)
	if v, _ := state.GetFlag(s, "SAW_B"); v != true {
		t.Error("late trigger should fire on the next cascade")
	}
}

func TestCascadeOrderWithinPass(t *testing.T) {
	// An earlier trigger's effects are visible to later triggers in the
	// same pass.
	defs := effectDefs(
		types.Trigger{
			ID:      "first",
			When:    []types.Condition{types.TruthyCond("A")},
			Effects: []types.Effect{types.Set("B", true)},
		},
		types.Trigger{
			ID:      "second",
			When:    []types.Condition{types.TruthyCond("B")},
			Effects: []types.Effect{types.Set("C", true)},
		},
	)
	s := state.NewState(defs)
	state.SetFlag(s, "A", true)

	Cascade(s, defs)
	if v, _ := state.GetFlag(s, "C"); v != true {
		t.Error("second trigger should see the first trigger's effect")
	}
}

func TestCascadeCommitsOnceMarks(t *testing.T) {
	defs := effectDefs(types.Trigger{
		ID:      "greeting",
		When:    []types.Condition{types.Once("greeted")},
		Effects: []types.Effect{types.Add("GREETINGS", 1)},
	})
	s := state.NewState(defs)

	Cascade(s, defs)
	Cascade(s, defs)
	if v, _ := state.GetFlag(s, "GREETINGS"); v != float64(1) {
		t.Errorf("GREETINGS = %v, want 1 (gate should hold after the first pass)", v)
	}
}
