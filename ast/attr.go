package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AttrKind discriminates the scalar (or list) kind an AttrValue holds.
type AttrKind int

const (
	AttrString AttrKind = iota
	AttrBool
	AttrInt
	AttrFloat
	AttrList
)

// AttrValue is one value of an AttrMap entry: a string, boolean, 64-bit
// signed integer, IEEE-754 double, or a list of the preceding scalar kinds.
type AttrValue struct {
	Kind AttrKind
	Str  string
	Bool bool
	Int  int64
	Flt  float64
	List []AttrValue
}

func StringAttr(s string) AttrValue  { return AttrValue{Kind: AttrString, Str: s} }
func BoolAttr(b bool) AttrValue      { return AttrValue{Kind: AttrBool, Bool: b} }
func IntAttr(i int64) AttrValue      { return AttrValue{Kind: AttrInt, Int: i} }
func FloatAttr(f float64) AttrValue  { return AttrValue{Kind: AttrFloat, Flt: f} }
func ListAttr(v []AttrValue) AttrValue {
	return AttrValue{Kind: AttrList, List: v}
}

// MarshalJSON serializes an AttrValue as its JSON primitive (or a JSON
// array for AttrList).
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AttrString:
		return json.Marshal(v.Str)
	case AttrBool:
		return json.Marshal(v.Bool)
	case AttrInt:
		return json.Marshal(v.Int)
	case AttrFloat:
		return json.Marshal(v.Flt)
	case AttrList:
		return json.Marshal(v.List)
	default:
		return nil, fmt.Errorf("ast: unknown AttrKind %d", v.Kind)
	}
}

// Attr is one ordered (key, value) pair of an AttrMap.
type Attr struct {
	Key   string
	Value AttrValue
}

// AttrMap is an ordered sequence of (key, value) pairs. Keys are ASCII
// identifiers matching [A-Za-z0-9_-]+. Lookup of a key returns the last
// occurrence, matching shadowing semantics for repeated attributes.
type AttrMap []Attr

// Get returns the value of the last entry with the given key, and whether
// any entry with that key was found.
func (m AttrMap) Get(key string) (AttrValue, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	return AttrValue{}, false
}

// GetString returns the string form of the last entry with the given key,
// or "" if absent. Non-string kinds are not stringified (the caller is
// expected to know which attributes are string-valued).
func (m AttrMap) GetString(key string) string {
	if v, ok := m.Get(key); ok && v.Kind == AttrString {
		return v.Str
	}
	return ""
}

// Has reports whether key appears anywhere in the map.
func (m AttrMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// MarshalJSON renders an AttrMap as a JSON object keyed by attribute
// name, last-match-wins per Get's shadowing semantics, in first-seen key
// order.
func (m AttrMap) MarshalJSON() ([]byte, error) {
	order := make([]string, 0, len(m))
	values := make(map[string]AttrValue, len(m))
	for _, a := range m {
		if _, ok := values[a.Key]; !ok {
			order = append(order, a.Key)
		}
		values[a.Key] = a.Value
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
