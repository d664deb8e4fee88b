package types

import (
	"encoding/json"
	"fmt"
)

// CondKind names one variant of the condition union. The wire form is a
// single-key JSON object: {"eq": ["COUNTER", 3]}, {"has": "key"},
// {"and": [...]}, {"not": {...}}.
type CondKind string

const (
	CondEq      CondKind = "eq"
	CondNe      CondKind = "ne"
	CondGt      CondKind = "gt"
	CondGte     CondKind = "gte"
	CondLt      CondKind = "lt"
	CondLte     CondKind = "lte"
	CondTruthy  CondKind = "truthy"
	CondFalsy   CondKind = "falsy"
	CondHas     CondKind = "has"
	CondLacks   CondKind = "lacks"
	CondPresent CondKind = "present"
	CondAbsent  CondKind = "absent"
	CondOnce    CondKind = "once"
	CondIsAt    CondKind = "is_at"
	CondAnd     CondKind = "and"
	CondOr      CondKind = "or"
	CondNot     CondKind = "not"
)

// Condition is one node of a boolean expression tree. Exactly one variant is
// populated, identified by Kind; payload fields not used by that variant are
// zero. Trees are built once from static content, so plain value ownership
// suffices (no cycles are possible).
type Condition struct {
	Kind CondKind

	// Path addresses a state slot for eq/ne/gt/gte/lt/lte/truthy/falsy,
	// a gate name for once, and an item reference for present/absent.
	Path string

	// Value is the comparison literal for eq/ne.
	Value Scalar

	// Number is the comparison literal for gt/gte/lt/lte.
	Number float64

	// Item and Location form the is_at pair; Item alone serves has/lacks.
	Item     string
	Location string

	// Children holds the operands of and/or; Inner the operand of not.
	Children []Condition
	Inner    *Condition
}

// pathValue is the [path, scalar] tuple wire form used by eq/ne.
type pathValue struct {
	Path  string
	Value Scalar
}

func (p pathValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Path, p.Value})
}

func (p *pathValue) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("expected [path, value] pair, got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &p.Path); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &p.Value)
}

// pathNumber is the [path, number] tuple wire form used by comparisons and
// add/subtract effects.
type pathNumber struct {
	Path   string
	Number float64
}

func (p pathNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Path, p.Number})
}

func (p *pathNumber) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("expected [path, number] pair, got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &p.Path); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &p.Number)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CondEq, CondNe:
		return json.Marshal(map[CondKind]pathValue{c.Kind: {c.Path, c.Value}})
	case CondGt, CondGte, CondLt, CondLte:
		return json.Marshal(map[CondKind]pathNumber{c.Kind: {c.Path, c.Number}})
	case CondTruthy, CondFalsy, CondOnce, CondPresent, CondAbsent:
		return json.Marshal(map[CondKind]string{c.Kind: c.Path})
	case CondHas, CondLacks:
		return json.Marshal(map[CondKind]string{c.Kind: c.Item})
	case CondIsAt:
		return json.Marshal(map[CondKind][2]string{c.Kind: {c.Item, c.Location}})
	case CondAnd, CondOr:
		return json.Marshal(map[CondKind][]Condition{c.Kind: c.Children})
	case CondNot:
		return json.Marshal(map[CondKind]*Condition{c.Kind: c.Inner})
	default:
		return nil, fmt.Errorf("unknown condition kind %q", c.Kind)
	}
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("condition must have exactly one key, got %d", len(raw))
	}

	var kind CondKind
	var payload json.RawMessage
	for k, v := range raw {
		kind, payload = CondKind(k), v
	}

	*c = Condition{Kind: kind}
	switch kind {
	case CondEq, CondNe:
		var pv pathValue
		if err := json.Unmarshal(payload, &pv); err != nil {
			return fmt.Errorf("condition %s: %w", kind, err)
		}
		c.Path, c.Value = pv.Path, pv.Value
	case CondGt, CondGte, CondLt, CondLte:
		var pn pathNumber
		if err := json.Unmarshal(payload, &pn); err != nil {
			return fmt.Errorf("condition %s: %w", kind, err)
		}
		c.Path, c.Number = pn.Path, pn.Number
	case CondTruthy, CondFalsy, CondOnce, CondPresent, CondAbsent:
		if err := json.Unmarshal(payload, &c.Path); err != nil {
			return fmt.Errorf("condition %s: %w", kind, err)
		}
	case CondHas, CondLacks:
		if err := json.Unmarshal(payload, &c.Item); err != nil {
			return fmt.Errorf("condition %s: %w", kind, err)
		}
	case CondIsAt:
		var pair [2]string
		if err := json.Unmarshal(payload, &pair); err != nil {
			return fmt.Errorf("condition %s: %w", kind, err)
		}
		c.Item, c.Location = pair[0], pair[1]
	case CondAnd, CondOr:
		if err := json.Unmarshal(payload, &c.Children); err != nil {
			return fmt.Errorf("condition %s: %w", kind, err)
		}
	case CondNot:
		c.Inner = &Condition{}
		if err := json.Unmarshal(payload, c.Inner); err != nil {
			return fmt.Errorf("condition %s: %w", kind, err)
		}
	default:
		return fmt.Errorf("unknown condition kind %q", kind)
	}
	return nil
}

// Convenience constructors keep test and fixture code readable.

func Eq(path string, value Scalar) Condition { return Condition{Kind: CondEq, Path: path, Value: value} }
func Ne(path string, value Scalar) Condition { return Condition{Kind: CondNe, Path: path, Value: value} }
func Gt(path string, n float64) Condition    { return Condition{Kind: CondGt, Path: path, Number: n} }
func Gte(path string, n float64) Condition   { return Condition{Kind: CondGte, Path: path, Number: n} }
func Lt(path string, n float64) Condition    { return Condition{Kind: CondLt, Path: path, Number: n} }
func Lte(path string, n float64) Condition   { return Condition{Kind: CondLte, Path: path, Number: n} }
func TruthyCond(path string) Condition       { return Condition{Kind: CondTruthy, Path: path} }
func FalsyCond(path string) Condition        { return Condition{Kind: CondFalsy, Path: path} }
func Has(item string) Condition              { return Condition{Kind: CondHas, Item: item} }
func Lacks(item string) Condition            { return Condition{Kind: CondLacks, Item: item} }
func Present(path string) Condition          { return Condition{Kind: CondPresent, Path: path} }
func Absent(path string) Condition           { return Condition{Kind: CondAbsent, Path: path} }
func Once(path string) Condition             { return Condition{Kind: CondOnce, Path: path} }
func IsAt(item, location string) Condition {
	return Condition{Kind: CondIsAt, Item: item, Location: location}
}
func And(children ...Condition) Condition { return Condition{Kind: CondAnd, Children: children} }
func Or(children ...Condition) Condition  { return Condition{Kind: CondOr, Children: children} }
func Not(inner Condition) Condition       { return Condition{Kind: CondNot, Inner: &inner} }
