package value

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildValue assembles a nested structure from generated leaves.
func buildValue(ints []int64, strs []string, nest bool) Value {
	items := make([]Value, 0, len(ints)+len(strs))
	for _, n := range ints {
		items = append(items, Int(n))
	}
	for _, s := range strs {
		items = append(items, String(s))
	}

	m := NewMapping().Set("items", Sequence(items...))
	for i, s := range strs {
		m.Set(fmt.Sprintf("k%d", i), String(s))
	}
	if nest {
		m.Set("inner", NewMapping().Set("seq", Sequence(items...)).Set("flag", Bool(len(ints) > 0)).Value())
	}
	return m.Value()
}

func TestDisplayRoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(display(v)) reproduces v", prop.ForAll(
		func(ints []int64, strs []string, nest bool) bool {
			v := buildValue(ints, strs, nest)
			text, err := EncodeDisplay(v)
			if err != nil {
				return false
			}
			return DecodeText(text).Equal(v)
		},
		gen.SliceOf(gen.Int64()),
		gen.SliceOf(gen.AlphaString()),
		gen.Bool(),
	))

	properties.Property("sequences round trip", prop.ForAll(
		func(ints []int64) bool {
			v := Sequence()
			for _, n := range ints {
				v = Sequence(append(v.Items(), Int(n))...)
			}
			text, err := EncodeDisplay(v)
			if err != nil {
				return false
			}
			return DecodeText(text).Equal(v)
		},
		gen.SliceOf(gen.Int64()),
	))

	properties.TestingRun(t)
}

func TestDecodeNestedIdempotent_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("probing twice equals probing once", prop.ForAll(
		func(ints []int64, strs []string, nest bool) bool {
			text, err := EncodeDisplay(buildValue(ints, strs, nest))
			if err != nil {
				return false
			}
			once := DecodeText(text)
			return DecodeNested(once).Equal(once)
		},
		gen.SliceOf(gen.Int64()),
		gen.SliceOf(gen.AlphaString()),
		gen.Bool(),
	))

	properties.Property("arbitrary text is stable after one decode", prop.ForAll(
		func(s string) bool {
			once := DecodeText(s)
			return DecodeNested(once).Equal(once)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
