package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEffectJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		effect Effect
		wire   string
	}{
		{"set bool", Set("DOOR_UNLOCKED", true), `{"set":["DOOR_UNLOCKED",true]}`},
		{"set string", Set("MOOD", "calm"), `{"set":["MOOD","calm"]}`},
		{"add", Add("SCORE", 5), `{"add":["SCORE",5]}`},
		{"subtract", Subtract("FUEL", 1.5), `{"subtract":["FUEL",1.5]}`},
		{"consume", Consume("LAMP_OIL"), `{"consume":"LAMP_OIL"}`},
		{"markOnce", MarkOnce("rang_bell"), `{"markOnce":"rang_bell"}`},
		{"addItem", AddItem("brass_key"), `{"addItem":"brass_key"}`},
		{"removeItem", RemoveItem("ticket"), `{"removeItem":"ticket"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.effect)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.wire {
				t.Errorf("marshal = %s, want %s", data, tt.wire)
			}

			var decoded Effect
			if err := json.Unmarshal([]byte(tt.wire), &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(decoded, tt.effect) {
				t.Errorf("round trip = %+v, want %+v", decoded, tt.effect)
			}
		})
	}
}

func TestEffectUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{"unknown kind", `{"teleport":"library"}`},
		{"two keys", `{"set":["A",1],"add":["B",2]}`},
		{"empty object", `{}`},
		{"add non-numeric", `{"add":["SCORE","lots"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Effect
			if err := json.Unmarshal([]byte(tt.wire), &e); err == nil {
				t.Errorf("unmarshal %s succeeded, want error", tt.wire)
			}
		})
	}
}
