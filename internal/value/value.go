package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindUnsupported Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

var kindNames = map[Kind]string{
	KindUnsupported: "unsupported",
	KindNull:        "null",
	KindBool:        "bool",
	KindNumber:      "number",
	KindString:      "string",
	KindSequence:    "sequence",
	KindMapping:     "mapping",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a dynamically typed value exchanged between the store, the
// remote engine and the rendering widget. The zero Value is unsupported.
type Value struct {
	kind   Kind
	text   string // number text, string contents or unsupported type name
	flag   bool
	items  []Value
	keys   []string
	fields map[string]Value
}

// Number builds a number from its JSON text. The text is kept verbatim.
func Number(text string) Value {
	return Value{kind: KindNumber, text: text}
}

// Int builds a number from an integer.
func Int(n int64) Value {
	return Number(strconv.FormatInt(n, 10))
}

// Float builds a number from a float. NaN and infinities have no JSON
// rendering and become strings.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return String(strconv.FormatFloat(f, 'g', -1, 64))
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return Int(int64(f))
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// String builds a string value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Bool builds a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Sequence builds an ordered sequence.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, items: items}
}

// Unsupported records a host value with no representation.
func Unsupported(typeName string) Value {
	return Value{kind: KindUnsupported, text: typeName}
}

// Mapping is an insertion-ordered string keyed map under construction.
type Mapping struct {
	keys   []string
	fields map[string]Value
}

// NewMapping returns an empty mapping builder.
func NewMapping() *Mapping {
	return &Mapping{fields: make(map[string]Value)}
}

// Set adds or replaces key. Replacing keeps the original position.
func (m *Mapping) Set(key string, v Value) *Mapping {
	if _, ok := m.fields[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.fields[key] = v
	return m
}

// Value freezes the builder.
func (m *Mapping) Value() Value {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	fields := make(map[string]Value, len(m.fields))
	for k, v := range m.fields {
		fields[k] = v
	}
	return Value{kind: KindMapping, keys: keys, fields: fields}
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// Text returns the number text or string contents.
func (v Value) Text() string { return v.text }

// BoolValue returns the boolean payload.
func (v Value) BoolValue() bool { return v.flag }

// Items returns the sequence elements.
func (v Value) Items() []Value { return v.items }

// Len is the element count of a sequence or mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.keys)
	}
	return 0
}

// Keys returns mapping keys in insertion order.
func (v Value) Keys() []string { return v.keys }

// Field looks up a mapping key.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	f, ok := v.fields[key]
	return f, ok
}

// With returns a copy of the mapping with key set.
func (v Value) With(key string, f Value) Value {
	m := v.Builder()
	m.Set(key, f)
	return m.Value()
}

// Builder copies a mapping into a builder. Non-mappings yield an empty builder.
func (v Value) Builder() *Mapping {
	m := NewMapping()
	for _, k := range v.keys {
		m.Set(k, v.fields[k])
	}
	return m
}

// Equal compares structure. Numbers compare by text.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.flag == o.flag
	case KindSequence:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.keys) != len(o.keys) {
			return false
		}
		for _, k := range v.keys {
			of, ok := o.fields[k]
			if !ok || !v.fields[k].Equal(of) {
				return false
			}
		}
		return true
	}
	return v.text == o.text
}

func (v Value) String() string {
	if v.kind == KindUnsupported {
		return "<unsupported " + v.text + ">"
	}
	s, _ := EncodeDisplay(v)
	return s
}

// FromAny converts a host Go value. Maps are keyed in sorted order since Go
// maps carry none.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Value:
		if t == nil {
			return Null()
		}
		return *t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case json.Number:
		return Number(t.String())
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Number(strconv.FormatUint(uint64(t), 10))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return Number(strconv.FormatUint(t, 10))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []Value:
		return Sequence(t...)
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = FromAny(e)
		}
		return Sequence(items...)
	case []string:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = String(e)
		}
		return Sequence(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, FromAny(t[k]))
		}
		return m.Value()
	case map[string]Value:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, t[k])
		}
		return m.Value()
	}
	return Unsupported(fmt.Sprintf("%T", x))
}

// MarshalJSON renders the display form.
func (v Value) MarshalJSON() ([]byte, error) {
	s, err := encodeJSON(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalJSON keeps key order and number text.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := parseJSON(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
