package types

import (
	"encoding/json"
	"fmt"
)

// EffectKind names one variant of the effect union. The wire form mirrors
// conditions: {"set": ["DOOR_UNLOCKED", true]}, {"addItem": "key"},
// {"markOnce": "met_guard"}.
type EffectKind string

const (
	EffectSet        EffectKind = "set"
	EffectAdd        EffectKind = "add"
	EffectSubtract   EffectKind = "subtract"
	EffectConsume    EffectKind = "consume"
	EffectMarkOnce   EffectKind = "markOnce"
	EffectAddItem    EffectKind = "addItem"
	EffectRemoveItem EffectKind = "removeItem"
)

// Effect is one atomic state mutation. Exactly one variant is populated,
// identified by Kind. Effects are applied in declared order with no rollback.
type Effect struct {
	Kind EffectKind

	// Path addresses the slot for set/add/subtract/consume/markOnce.
	Path string

	// Value is the literal for set.
	Value Scalar

	// Amount is the delta for add/subtract.
	Amount float64

	// Item is the inventory item id for addItem/removeItem.
	Item string
}

func (e Effect) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EffectSet:
		return json.Marshal(map[EffectKind]pathValue{e.Kind: {e.Path, e.Value}})
	case EffectAdd, EffectSubtract:
		return json.Marshal(map[EffectKind]pathNumber{e.Kind: {e.Path, e.Amount}})
	case EffectConsume, EffectMarkOnce:
		return json.Marshal(map[EffectKind]string{e.Kind: e.Path})
	case EffectAddItem, EffectRemoveItem:
		return json.Marshal(map[EffectKind]string{e.Kind: e.Item})
	default:
		return nil, fmt.Errorf("unknown effect kind %q", e.Kind)
	}
}

func (e *Effect) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("effect must have exactly one key, got %d", len(raw))
	}

	var kind EffectKind
	var payload json.RawMessage
	for k, v := range raw {
		kind, payload = EffectKind(k), v
	}

	*e = Effect{Kind: kind}
	switch kind {
	case EffectSet:
		var pv pathValue
		if err := json.Unmarshal(payload, &pv); err != nil {
			return fmt.Errorf("effect %s: %w", kind, err)
		}
		e.Path, e.Value = pv.Path, pv.Value
	case EffectAdd, EffectSubtract:
		var pn pathNumber
		if err := json.Unmarshal(payload, &pn); err != nil {
			return fmt.Errorf("effect %s: %w", kind, err)
		}
		e.Path, e.Amount = pn.Path, pn.Number
	case EffectConsume, EffectMarkOnce:
		if err := json.Unmarshal(payload, &e.Path); err != nil {
			return fmt.Errorf("effect %s: %w", kind, err)
		}
	case EffectAddItem, EffectRemoveItem:
		if err := json.Unmarshal(payload, &e.Item); err != nil {
			return fmt.Errorf("effect %s: %w", kind, err)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", kind)
	}
	return nil
}

// Convenience constructors for fixtures and tests.

func Set(path string, value Scalar) Effect { return Effect{Kind: EffectSet, Path: path, Value: value} }
func Add(path string, n float64) Effect    { return Effect{Kind: EffectAdd, Path: path, Amount: n} }
func Subtract(path string, n float64) Effect {
	return Effect{Kind: EffectSubtract, Path: path, Amount: n}
}
func Consume(path string) Effect    { return Effect{Kind: EffectConsume, Path: path} }
func MarkOnce(path string) Effect   { return Effect{Kind: EffectMarkOnce, Path: path} }
func AddItem(item string) Effect    { return Effect{Kind: EffectAddItem, Item: item} }
func RemoveItem(item string) Effect { return Effect{Kind: EffectRemoveItem, Item: item} }
