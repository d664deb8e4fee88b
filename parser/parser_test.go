package parser

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{"empty", "", Command{}},
		{"whitespace only", "   ", Command{}},

		{"bare verb", "look", Command{Verb: "look"}},
		{"verb and object", "take lantern", Command{Verb: "take", Object: "lantern"}},
		{"multiword object", "examine brass key", Command{Verb: "examine", Object: "brass key"}},
		{"case and spacing", "  TAKE   Lantern ", Command{Verb: "take", Object: "lantern"}},

		{"short look alias", "l", Command{Verb: "look"}},
		{"short examine alias", "x door", Command{Verb: "examine", Object: "door"}},
		{"get alias", "get rope", Command{Verb: "take", Object: "rope"}},
		{"read alias", "read letter", Command{Verb: "examine", Object: "letter"}},
		{"inventory alias", "i", Command{Verb: "inventory"}},
		{"help alias", "help", Command{Verb: "hint"}},
		{"where alias", "where", Command{Verb: "status"}},

		{"bare direction", "n", Command{Verb: "go", Object: "north"}},
		{"bare full direction", "southwest", Command{Verb: "go", Object: "southwest"}},
		{"bare in", "in", Command{Verb: "go", Object: "in"}},
		{"go direction", "go north", Command{Verb: "go", Object: "north"}},
		{"walk alias", "walk east", Command{Verb: "go", Object: "east"}},
		{"go to destination", "go to the library", Command{Verb: "go", Object: "library"}},
		{"enter room name", "enter the study", Command{Verb: "go", Object: "study"}},

		{"look at", "look at the painting", Command{Verb: "examine", Object: "painting"}},
		{"look under", "look under mat", Command{Verb: "examine", Object: "mat"}},
		{"pick up", "pick up the crowbar", Command{Verb: "take", Object: "crowbar"}},
		{"talk to", "talk to the guard", Command{Verb: "talk", Object: "guard"}},
		{"speak with", "speak with butler", Command{Verb: "talk", Object: "butler"}},

		{"articles stripped", "take an apple", Command{Verb: "take", Object: "apple"}},

		{"use with target", "use key on door", Command{Verb: "use", Object: "key", Target: "door"}},
		{"use with preposition with", "use crowbar with crate", Command{Verb: "use", Object: "crowbar", Target: "crate"}},
		{"use with number", "use dial 7", Command{Verb: "use", Object: "dial", Number: num(7)}},
		{"use target and number", "use dial on safe 7", Command{Verb: "use", Object: "dial", Target: "safe", Number: num(7)}},
		{"talk option number", "talk guard 2", Command{Verb: "talk", Object: "guard", Number: num(2)}},
		{"number stays part of object for other verbs", "take route 66", Command{Verb: "take", Object: "route 66"}},

		{"unknown verb passes through", "dance wildly", Command{Verb: "dance", Object: "wildly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Verb != tt.want.Verb || got.Object != tt.want.Object || got.Target != tt.want.Target {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if (got.Number == nil) != (tt.want.Number == nil) {
				t.Fatalf("Parse(%q).Number = %v, want %v", tt.input, got.Number, tt.want.Number)
			}
			if got.Number != nil && *got.Number != *tt.want.Number {
				t.Errorf("Parse(%q).Number = %v, want %v", tt.input, *got.Number, *tt.want.Number)
			}
		})
	}
}

func num(n float64) *float64 { return &n }
