package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Shape classifies text handed to Parse.
type Shape int

const (
	// ShapeOpaque is text that is not a JSON array or object.
	ShapeOpaque Shape = iota
	ShapeArray
	ShapeObject
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	}
	return "opaque"
}

// ParseOutcome is the result of checking text for structure.
type ParseOutcome struct {
	Shape Shape
	// Value holds the parsed structure, or the text as a String when opaque.
	Value Value
	// Err is the parser complaint for opaque text, nil for well formed
	// scalar JSON.
	Err error
}

// Parse tries the text as a JSON array, then as a JSON object, and
// otherwise leaves it opaque. Top level scalars are opaque.
func Parse(text string) ParseOutcome {
	v, err := parseJSON(text)
	if err != nil {
		return ParseOutcome{Shape: ShapeOpaque, Value: String(text), Err: err}
	}
	switch v.kind {
	case KindSequence:
		return ParseOutcome{Shape: ShapeArray, Value: v}
	case KindMapping:
		return ParseOutcome{Shape: ShapeObject, Value: v}
	}
	return ParseOutcome{Shape: ShapeOpaque, Value: String(text)}
}

// IsArrayShaped reports whether text is a JSON array.
func IsArrayShaped(text string) bool {
	return Parse(text).Shape == ShapeArray
}

// IsObjectShaped reports whether text is a JSON object.
func IsObjectShaped(text string) bool {
	return Parse(text).Shape == ShapeObject
}

// DecodeNested expands strings carrying JSON arrays or objects into
// structures, recursively. Other values are returned unchanged, so applying
// it twice is the same as applying it once.
func DecodeNested(v Value) Value {
	switch v.kind {
	case KindString:
		out := Parse(v.text)
		if out.Shape == ShapeOpaque {
			return v
		}
		return DecodeNested(out.Value)
	case KindSequence:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = DecodeNested(item)
		}
		return Sequence(items...)
	case KindMapping:
		m := NewMapping()
		for _, k := range v.keys {
			m.Set(k, DecodeNested(v.fields[k]))
		}
		return m.Value()
	}
	return v
}

// DecodeText expands raw text, the entry point for untyped store input.
func DecodeText(text string) Value {
	return DecodeNested(String(text))
}

var errTrailingData = errors.New("invalid character after top-level value")

// maxDepth bounds array and object nesting accepted by the parser.
const maxDepth = 10000

func parseJSON(text string) (Value, error) {
	if strings.TrimSpace(text) == "" {
		return Value{}, io.ErrUnexpectedEOF
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := parseNext(dec, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, errTrailingData
	}
	return v, nil
}

func parseNext(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	return parseToken(dec, tok, depth)
}

func parseToken(dec *json.Decoder, tok json.Token, depth int) (Value, error) {
	if _, ok := tok.(json.Delim); ok && depth >= maxDepth {
		return Value{}, fmt.Errorf("exceeded max depth %d", maxDepth)
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := parseNext(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Sequence(items...), nil
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				field, err := parseNext(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, field)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return m.Value(), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
