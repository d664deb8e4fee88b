package types

import (
	"encoding/json"
	"fmt"
)

// Fragment is one conditionally-visible unit of descriptive text. Fragments
// in a set are not mutually exclusive by default: only fragments sharing a
// Group exclude each other (first in declared order wins), and only the
// maximum-priority tier of passing fragments is shown at all.
type Fragment struct {
	Say      string      `json:"say"`
	When     []Condition `json:"when,omitempty"`
	Priority int         `json:"priority,omitempty"`
	Group    string      `json:"group,omitempty"`
}

// Text is either a plain string or a set of fragments. On the wire a plain
// value is a bare JSON string; a fragment set is {"id": ..., "fragments":
// [...]}. The zero Text renders as the empty string.
type Text struct {
	Plain     string
	ID        string
	Fragments []Fragment
}

// PlainText wraps a literal string.
func PlainText(s string) Text { return Text{Plain: s} }

// FragmentText builds a fragment set.
func FragmentText(id string, fragments ...Fragment) Text {
	return Text{ID: id, Fragments: fragments}
}

// IsZero reports whether the text is entirely absent (useful for optional
// fields like onTakeText and blockedMessage).
func (t Text) IsZero() bool {
	return t.Plain == "" && t.Fragments == nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if t.Fragments == nil {
		return json.Marshal(t.Plain)
	}
	return json.Marshal(struct {
		ID        string     `json:"id,omitempty"`
		Fragments []Fragment `json:"fragments"`
	}{t.ID, t.Fragments})
}

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Plain)
	}
	var set struct {
		ID        string     `json:"id"`
		Fragments []Fragment `json:"fragments"`
	}
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("text must be a string or a fragment set: %w", err)
	}
	t.ID = set.ID
	t.Fragments = set.Fragments
	if t.Fragments == nil {
		t.Fragments = []Fragment{}
	}
	return nil
}
