package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestConditionJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
		wire string
	}{
		{"eq string", Eq("room", "library"), `{"eq":["room","library"]}`},
		{"eq number", Eq("COUNTER", float64(3)), `{"eq":["COUNTER",3]}`},
		{"eq bool", Eq("DOOR_OPEN", true), `{"eq":["DOOR_OPEN",true]}`},
		{"ne", Ne("flags.MOOD", "angry"), `{"ne":["flags.MOOD","angry"]}`},
		{"gt", Gt("turnCount", 10), `{"gt":["turnCount",10]}`},
		{"gte", Gte("SCORE", 0), `{"gte":["SCORE",0]}`},
		{"lt", Lt("FUEL", 2.5), `{"lt":["FUEL",2.5]}`},
		{"lte", Lte("DEPTH", 7), `{"lte":["DEPTH",7]}`},
		{"truthy", TruthyCond("LAMP_LIT"), `{"truthy":"LAMP_LIT"}`},
		{"falsy", FalsyCond("ALARM"), `{"falsy":"ALARM"}`},
		{"has", Has("brass_key"), `{"has":"brass_key"}`},
		{"lacks", Lacks("lantern"), `{"lacks":"lantern"}`},
		{"present", Present("cellar.crate"), `{"present":"cellar.crate"}`},
		{"absent", Absent("statue"), `{"absent":"statue"}`},
		{"once", Once("met_guard"), `{"once":"met_guard"}`},
		{"is_at", IsAt("coin", "fountain"), `{"is_at":["coin","fountain"]}`},
		{
			"and",
			And(Has("key"), TruthyCond("AWAKE")),
			`{"and":[{"has":"key"},{"truthy":"AWAKE"}]}`,
		},
		{
			"or",
			Or(Once("first_visit"), Gt("VISITS", 1)),
			`{"or":[{"once":"first_visit"},{"gt":["VISITS",1]}]}`,
		},
		{"not", Not(Has("cursed_ring")), `{"not":{"has":"cursed_ring"}}`},
		{
			"nested",
			And(Not(FalsyCond("POWER")), Or(Has("fuse"), Has("wire"))),
			`{"and":[{"not":{"falsy":"POWER"}},{"or":[{"has":"fuse"},{"has":"wire"}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.cond)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.wire {
				t.Errorf("marshal = %s, want %s", data, tt.wire)
			}

			var decoded Condition
			if err := json.Unmarshal([]byte(tt.wire), &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(decoded, tt.cond) {
				t.Errorf("round trip = %+v, want %+v", decoded, tt.cond)
			}
		})
	}
}

func TestConditionUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{"unknown kind", `{"sparkles":"x"}`},
		{"two keys", `{"has":"key","lacks":"key"}`},
		{"empty object", `{}`},
		{"eq missing element", `{"eq":["only_path"]}`},
		{"gt non-numeric", `{"gt":["path","three"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Condition
			if err := json.Unmarshal([]byte(tt.wire), &c); err == nil {
				t.Errorf("unmarshal %s succeeded, want error", tt.wire)
			}
		})
	}
}

func TestConditionMarshalUnknownKind(t *testing.T) {
	if _, err := json.Marshal(Condition{Kind: "bogus"}); err == nil {
		t.Error("marshal of unknown kind succeeded, want error")
	}
}
