package save

import (
	"strings"
	"testing"

	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

func saveDefs() *state.Defs {
	return state.NewDefs(&types.GameDefinition{
		Name:         "Save Test",
		StartingRoom: "hall",
		InitialFlags: map[string]types.Scalar{"LAMP_LIT": false, "SCORE": float64(0)},
		Rooms: []types.Room{
			{ID: "hall", Name: "Hall"},
			{ID: "cellar", Name: "Cellar"},
		},
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	defs := saveDefs()
	s := state.NewState(defs)
	s.CurrentRoomID = "cellar"
	s.TurnCount = 9
	s.Won = true
	s.GameOver = true
	state.SetFlag(s, "LAMP_LIT", true)
	state.AddInventory(s, "key")
	state.MarkVisited(s, "hall")
	state.MarkVisited(s, "cellar")
	state.MarkOnce(s, "met_guard")

	data, err := Snapshot(s)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	restored, err := Restore(defs, data)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.CurrentRoomID != "cellar" || restored.TurnCount != 9 {
		t.Errorf("room %q turns %d", restored.CurrentRoomID, restored.TurnCount)
	}
	if !restored.Won || !restored.GameOver {
		t.Errorf("won=%v gameOver=%v", restored.Won, restored.GameOver)
	}
	if !state.HasItem(restored, "key") || !state.IsTaken(restored, "key") {
		t.Error("inventory lost")
	}
	if !state.HasOnce(restored, "met_guard") {
		t.Error("once set lost")
	}
	if v, _ := state.GetFlag(restored, "LAMP_LIT"); v != true {
		t.Errorf("LAMP_LIT = %v", v)
	}
	if len(restored.VisitedRooms) != 2 {
		t.Errorf("visited = %v", restored.VisitedRooms)
	}
}

func TestRestoreDefaultsMissingFields(t *testing.T) {
	defs := saveDefs()

	restored, err := Restore(defs, []byte(`{"turnCount": 3}`))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.CurrentRoomID != "hall" {
		t.Errorf("room = %q, want starting room", restored.CurrentRoomID)
	}
	if restored.InventoryIDs == nil || restored.TakenItemIDs == nil ||
		restored.VisitedRooms == nil || restored.Once == nil {
		t.Error("collections should default to empty, not nil")
	}
	if restored.TurnCount != 3 {
		t.Errorf("turnCount = %d", restored.TurnCount)
	}
	// Initial flags fill in anything the snapshot lacks.
	if v, ok := state.GetFlag(restored, "SCORE"); !ok || v != float64(0) {
		t.Errorf("SCORE = %v, %v", v, ok)
	}
}

func TestRestoreMergesFlagsOverInitial(t *testing.T) {
	defs := saveDefs()

	restored, err := Restore(defs, []byte(`{"flags": {"LAMP_LIT": true, "EXTRA": "x"}}`))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if v, _ := state.GetFlag(restored, "LAMP_LIT"); v != true {
		t.Error("saved flag should win over the initial value")
	}
	if v, _ := state.GetFlag(restored, "SCORE"); v != float64(0) {
		t.Error("unsaved initial flag should survive")
	}
	if v, _ := state.GetFlag(restored, "EXTRA"); v != "x" {
		t.Error("saved-only flag should load")
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	if _, err := Restore(saveDefs(), []byte("not json")); err == nil {
		t.Error("garbage should not restore")
	}
}

func TestRestoreRejectsUnknownRoom(t *testing.T) {
	_, err := Restore(saveDefs(), []byte(`{"currentRoomId": "oubliette"}`))
	if err == nil {
		t.Fatal("a snapshot naming a room the definition lacks should not restore")
	}
	if !strings.Contains(err.Error(), `"oubliette"`) {
		t.Errorf("err = %v, want the offending room id", err)
	}
}
