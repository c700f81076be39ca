package value

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// DecodeOperator is the remote engine word that turns JSON text on the
// stack into a structure.
const DecodeOperator = "JSON->"

// ErrUnsupported is returned for values with no literal or JSON rendering.
var ErrUnsupported = errors.New("unsupported value")

// EncodeError names the variant that could not be rendered.
type EncodeError struct {
	Kind     Kind
	TypeName string
}

func (e *EncodeError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("cannot encode %s value of type %s", e.Kind, e.TypeName)
	}
	return fmt.Sprintf("cannot encode %s value", e.Kind)
}

func (e *EncodeError) Unwrap() error { return ErrUnsupported }

// EncodeLiteral renders v as a script literal: numbers verbatim, strings
// single quoted, structures as quoted JSON followed by the decode operator.
func EncodeLiteral(v Value) (string, error) {
	switch v.kind {
	case KindNumber:
		return v.text, nil
	case KindString:
		return "'" + v.text + "'", nil
	case KindBool:
		if v.flag {
			return "true", nil
		}
		return "false", nil
	case KindNull:
		return "NULL", nil
	case KindSequence, KindMapping:
		s, err := encodeJSON(v)
		if err != nil {
			return "", err
		}
		return "'" + s + "' " + DecodeOperator, nil
	}
	return "", &EncodeError{Kind: v.kind, TypeName: v.text}
}

// EncodeDisplay renders v for display: scalars as-is, structures as
// compact JSON.
func EncodeDisplay(v Value) (string, error) {
	switch v.kind {
	case KindNumber, KindString:
		return v.text, nil
	case KindBool, KindNull, KindSequence, KindMapping:
		return encodeJSON(v)
	}
	return "", &EncodeError{Kind: v.kind, TypeName: v.text}
}

func encodeJSON(v Value) (string, error) {
	var b strings.Builder
	if err := writeJSON(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSON(b *strings.Builder, v Value) error {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.flag {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(v.text)
	case KindString:
		return writeString(b, v.text)
	case KindSequence:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KindMapping:
		b.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeString(b, k); err != nil {
				return err
			}
			b.WriteByte(':')
			if err := writeJSON(b, v.fields[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return &EncodeError{Kind: v.kind, TypeName: v.text}
	}
	return nil
}

// writeString quotes without HTML escaping; the remote engine and the
// widget both read the text back verbatim.
func writeString(b *strings.Builder, s string) error {
	quoted, err := sonic.ConfigDefault.MarshalToString(s)
	if err != nil {
		return fmt.Errorf("quote string: %w", err)
	}
	b.WriteString(quoted)
	return nil
}
