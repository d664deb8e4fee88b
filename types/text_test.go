package types

import (
	"encoding/json"
	"testing"
)

func TestTextUnmarshalPlain(t *testing.T) {
	var text Text
	if err := json.Unmarshal([]byte(`"A dusty corridor."`), &text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if text.Plain != "A dusty corridor." {
		t.Errorf("Plain = %q", text.Plain)
	}
	if text.Fragments != nil {
		t.Errorf("Fragments = %v, want nil", text.Fragments)
	}
}

func TestTextUnmarshalFragments(t *testing.T) {
	wire := `{
		"id": "cellar_desc",
		"fragments": [
			{"say": "The cellar is pitch black.", "when": [{"falsy": "LAMP_LIT"}]},
			{"say": "Shelves line the walls.", "priority": 1, "group": "mood"}
		]
	}`

	var text Text
	if err := json.Unmarshal([]byte(wire), &text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if text.ID != "cellar_desc" {
		t.Errorf("ID = %q", text.ID)
	}
	if len(text.Fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(text.Fragments))
	}
	if text.Fragments[0].Say != "The cellar is pitch black." {
		t.Errorf("fragment 0 say = %q", text.Fragments[0].Say)
	}
	if len(text.Fragments[0].When) != 1 || text.Fragments[0].When[0].Kind != CondFalsy {
		t.Errorf("fragment 0 when = %+v", text.Fragments[0].When)
	}
	if text.Fragments[1].Priority != 1 || text.Fragments[1].Group != "mood" {
		t.Errorf("fragment 1 = %+v", text.Fragments[1])
	}
}

func TestItemTextFieldsDecode(t *testing.T) {
	wire := `{
		"id": "chest",
		"name": "Chest",
		"takeBlockedText": "It is bolted to the floor.",
		"onTakeText": {"fragments": [{"say": "It comes free with a groan."}]}
	}`

	var item Item
	if err := json.Unmarshal([]byte(wire), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.TakeBlockedText.Plain != "It is bolted to the floor." {
		t.Errorf("TakeBlockedText = %+v", item.TakeBlockedText)
	}
	if item.TakeBlockedText.IsZero() {
		t.Error("TakeBlockedText should be non-zero")
	}
	if len(item.OnTakeText.Fragments) != 1 {
		t.Errorf("OnTakeText = %+v", item.OnTakeText)
	}
}

func TestTextMarshal(t *testing.T) {
	plain, err := json.Marshal(PlainText("Hello."))
	if err != nil {
		t.Fatalf("marshal plain: %v", err)
	}
	if string(plain) != `"Hello."` {
		t.Errorf("plain = %s", plain)
	}

	set, err := json.Marshal(FragmentText("d", Fragment{Say: "Hi."}))
	if err != nil {
		t.Fatalf("marshal fragments: %v", err)
	}
	want := `{"id":"d","fragments":[{"say":"Hi."}]}`
	if string(set) != want {
		t.Errorf("fragments = %s, want %s", set, want)
	}
}

func TestTextIsZero(t *testing.T) {
	if !(Text{}).IsZero() {
		t.Error("zero Text should be zero")
	}
	if PlainText("x").IsZero() {
		t.Error("plain text should not be zero")
	}
	if FragmentText("", Fragment{Say: "x"}).IsZero() {
		t.Error("fragment text should not be zero")
	}
}

func TestScalarCoerce(t *testing.T) {
	tests := []struct {
		name string
		v    Scalar
		ok   bool
		want float64
		nan  bool
	}{
		{"number", float64(4), true, 4, false},
		{"int", 7, true, 7, false},
		{"true", true, true, 1, false},
		{"false", false, true, 0, false},
		{"blank string", "", true, 0, false},
		{"numeric string", "12.5", true, 12.5, false},
		{"garbage string", "lots", true, 0, true},
		{"missing", nil, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(tt.v, tt.ok)
			if tt.nan {
				if got == got {
					t.Errorf("Coerce = %v, want NaN", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Coerce = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Scalar
		ok   bool
		want bool
	}{
		{"missing", nil, false, false},
		{"nil value", nil, true, false},
		{"false", false, true, false},
		{"true", true, true, true},
		{"zero", float64(0), true, false},
		{"nonzero", float64(3), true, true},
		{"empty string", "", true, false},
		{"string", "yes", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v, tt.ok); got != tt.want {
				t.Errorf("Truthy = %v, want %v", got, tt.want)
			}
		})
	}
}
