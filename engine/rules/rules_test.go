package rules

import (
	"reflect"
	"testing"

	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

func condDefs() *state.Defs {
	return state.NewDefs(&types.GameDefinition{
		Name:         "Cond Test",
		StartingRoom: "cellar",
		Rooms: []types.Room{
			{
				ID:   "cellar",
				Name: "Cellar",
				Items: []types.Item{
					{ID: "crate", Name: "Crate"},
					{ID: "coin", Name: "Coin", Location: "crate"},
				},
			},
			{ID: "hall", Name: "Hall"},
		},
	})
}

func condState(defs *state.Defs) *types.GameState {
	s := state.NewState(defs)
	state.SetFlag(s, "LAMP_LIT", true)
	state.SetFlag(s, "ALARM", false)
	state.SetFlag(s, "SCORE", float64(5))
	state.SetFlag(s, "NAME", "iris")
	return s
}

func TestEvalLeaves(t *testing.T) {
	defs := condDefs()
	s := condState(defs)
	state.AddInventory(s, "lantern")
	s.TurnCount = 3

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"eq string match", types.Eq("NAME", "iris"), true},
		{"eq string miss", types.Eq("NAME", "vera"), false},
		{"eq missing path", types.Eq("GHOST", "x"), false},
		{"eq builtin room", types.Eq("room", "cellar"), true},
		{"ne miss", types.Ne("NAME", "vera"), true},
		{"ne missing path passes", types.Ne("GHOST", "x"), true},
		{"gt pass", types.Gt("SCORE", 4), true},
		{"gt fail", types.Gt("SCORE", 5), false},
		{"gt missing is false", types.Gt("GHOST", 0), false},
		{"gte boundary", types.Gte("SCORE", 5), true},
		{"lt turnCount", types.Lt("turnCount", 10), true},
		{"lte fail", types.Lte("SCORE", 4), false},
		{"lt bool coerces", types.Lt("ALARM", 1), true},
		{"truthy", types.TruthyCond("LAMP_LIT"), true},
		{"truthy missing", types.TruthyCond("GHOST"), false},
		{"falsy", types.FalsyCond("ALARM"), true},
		{"falsy missing", types.FalsyCond("GHOST"), true},
		{"has", types.Has("lantern"), true},
		{"has miss", types.Has("sword"), false},
		{"lacks", types.Lacks("sword"), true},
		{"present bare id", types.Present("crate"), true},
		{"present dotted path", types.Present("cellar.crate"), true},
		{"present unknown", types.Present("statue"), false},
		{"absent", types.Absent("statue"), true},
		{"is_at contained", types.IsAt("coin", "crate"), true},
		{"is_at default location", types.IsAt("crate", "cellar"), true},
		{"is_at wrong place", types.IsAt("coin", "cellar"), false},
		{"unknown kind fails closed", types.Condition{Kind: "sparkles"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eval(tt.cond, s, defs); got.Pass != tt.want {
				t.Errorf("Eval = %v, want %v", got.Pass, tt.want)
			}
		})
	}
}

func TestPresentIgnoresTakenItems(t *testing.T) {
	defs := condDefs()
	s := condState(defs)

	if !Eval(types.Present("crate"), s, defs).Pass {
		t.Fatal("crate should start present")
	}
	state.AddInventory(s, "crate")
	if Eval(types.Present("crate"), s, defs).Pass {
		t.Error("taken item should not be present")
	}
	if Eval(types.IsAt("crate", "cellar"), s, defs).Pass {
		t.Error("taken item should be nowhere")
	}
}

func TestOnceReportsMarkOnlyWhenPassing(t *testing.T) {
	defs := condDefs()
	s := condState(defs)

	r := Eval(types.Once("met_guard"), s, defs)
	if !r.Pass || !reflect.DeepEqual(r.OnceMarks, []string{"met_guard"}) {
		t.Fatalf("first eval = %+v", r)
	}
	// Evaluation alone must not consume the gate.
	if state.HasOnce(s, "met_guard") {
		t.Fatal("eval must not write state")
	}

	state.MarkOnce(s, "met_guard")
	r = Eval(types.Once("met_guard"), s, defs)
	if r.Pass || len(r.OnceMarks) != 0 {
		t.Errorf("after commit = %+v", r)
	}
}

func TestAndMarkSemantics(t *testing.T) {
	defs := condDefs()
	s := condState(defs)

	// All pass: marks accumulate in order.
	r := Eval(types.And(types.Once("a"), types.TruthyCond("LAMP_LIT"), types.Once("b")), s, defs)
	if !r.Pass || !reflect.DeepEqual(r.OnceMarks, []string{"a", "b"}) {
		t.Errorf("passing and = %+v", r)
	}

	// Any failure discards all marks.
	r = Eval(types.And(types.Once("a"), types.TruthyCond("GHOST")), s, defs)
	if r.Pass || len(r.OnceMarks) != 0 {
		t.Errorf("failing and = %+v", r)
	}

	// Empty and passes.
	if !Eval(types.And(), s, defs).Pass {
		t.Error("empty and should pass")
	}
}

func TestOrReturnsFirstPassingMarks(t *testing.T) {
	defs := condDefs()
	s := condState(defs)

	r := Eval(types.Or(types.TruthyCond("GHOST"), types.Once("a"), types.Once("b")), s, defs)
	if !r.Pass || !reflect.DeepEqual(r.OnceMarks, []string{"a"}) {
		t.Errorf("or = %+v", r)
	}

	r = Eval(types.Or(types.TruthyCond("GHOST"), types.FalsyCond("LAMP_LIT")), s, defs)
	if r.Pass {
		t.Error("all-failing or should fail")
	}
}

func TestNotNeverPropagatesMarks(t *testing.T) {
	defs := condDefs()
	s := condState(defs)

	r := Eval(types.Not(types.Once("a")), s, defs)
	if r.Pass {
		t.Error("not of passing once should fail")
	}
	if len(r.OnceMarks) != 0 {
		t.Errorf("marks escaped negation: %v", r.OnceMarks)
	}

	state.MarkOnce(s, "a")
	r = Eval(types.Not(types.Once("a")), s, defs)
	if !r.Pass || len(r.OnceMarks) != 0 {
		t.Errorf("not of consumed once = %+v", r)
	}
}

func TestEvalAll(t *testing.T) {
	defs := condDefs()
	s := condState(defs)

	if r := EvalAll(nil, s, defs); !r.Pass {
		t.Error("nil list should pass")
	}

	r := EvalAll([]types.Condition{
		types.Once("a"),
		types.Has("lantern"),
	}, s, defs)
	if r.Pass {
		t.Error("missing lantern should fail the list")
	}

	state.AddInventory(s, "lantern")
	r = EvalAll([]types.Condition{
		types.Once("a"),
		types.Has("lantern"),
	}, s, defs)
	if !r.Pass || !reflect.DeepEqual(r.OnceMarks, []string{"a"}) {
		t.Errorf("EvalAll = %+v", r)
	}
}
