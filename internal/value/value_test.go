package value

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{name: "integer", in: Int(42), want: "42"},
		{name: "decimal", in: Number("3.14"), want: "3.14"},
		{name: "string", in: String("hello"), want: "'hello'"},
		{name: "bool", in: Bool(true), want: "true"},
		{name: "null", in: Null(), want: "NULL"},
		{name: "sequence", in: Sequence(Int(1), String("a")), want: `'[1,"a"]' JSON->`},
		{
			name: "mapping",
			in:   NewMapping().Set("b", Int(2)).Set("a", Sequence()).Value(),
			want: `'{"b":2,"a":[]}' JSON->`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeLiteral(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeLiteralUnsupported(t *testing.T) {
	_, err := EncodeLiteral(FromAny(make(chan int)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)

	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "chan int", encErr.TypeName)

	_, err = EncodeLiteral(Sequence(Int(1), Unsupported("func()")))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEncodeDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{name: "number", in: Int(7), want: "7"},
		{name: "string is not quoted", in: String("it's"), want: "it's"},
		{name: "no html escaping", in: Sequence(String("<a&b>")), want: `["<a&b>"]`},
		{name: "nested", in: NewMapping().Set("gts", Sequence(Int(1), Null())).Value(), want: `{"gts":[1,null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeDisplay(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		text  string
		shape Shape
	}{
		{text: `[1,2]`, shape: ShapeArray},
		{text: `  {"a":1} `, shape: ShapeObject},
		{text: ``, shape: ShapeOpaque},
		{text: `   `, shape: ShapeOpaque},
		{text: `42`, shape: ShapeOpaque},
		{text: `"[1]"`, shape: ShapeOpaque},
		{text: `true`, shape: ShapeOpaque},
		{text: `[1,2`, shape: ShapeOpaque},
		{text: `{"a":1} trailing`, shape: ShapeOpaque},
		{text: `{'a':1}`, shape: ShapeOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			out := Parse(tt.text)
			assert.Equal(t, tt.shape, out.Shape)
			assert.Equal(t, tt.shape == ShapeArray, IsArrayShaped(tt.text))
			assert.Equal(t, tt.shape == ShapeObject, IsObjectShaped(tt.text))
			if tt.shape == ShapeOpaque {
				assert.Equal(t, String(tt.text), out.Value)
			}
		})
	}
}

func TestParseDeepNestingIsOpaque(t *testing.T) {
	deep := strings.Repeat("[", maxDepth*10)
	out := Parse(deep)
	assert.Equal(t, ShapeOpaque, out.Shape)
	require.Error(t, out.Err)
	assert.Contains(t, out.Err.Error(), "max depth")

	closed := strings.Repeat("[", maxDepth+1) + strings.Repeat("]", maxDepth+1)
	assert.Equal(t, ShapeOpaque, Parse(closed).Shape)

	nested := strings.Repeat(`{"a":`, 50) + "1" + strings.Repeat("}", 50)
	assert.Equal(t, ShapeObject, Parse(nested).Shape)
}

func TestParseKeepsKeyOrderAndNumberText(t *testing.T) {
	out := Parse(`{"z":1.50,"a":[1e3,2],"m":{"y":true,"x":null}}`)
	require.Equal(t, ShapeObject, out.Shape)

	assert.Equal(t, []string{"z", "a", "m"}, out.Value.Keys())
	z, _ := out.Value.Field("z")
	assert.Equal(t, "1.50", z.Text())

	s, err := EncodeDisplay(out.Value)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1.50,"a":[1e3,2],"m":{"y":true,"x":null}}`, s)
}

func TestDecodeNestedExpandsNestedText(t *testing.T) {
	in := String(`{"a":"[1,2]","b":"{\"c\":\"x\"}","d":"plain"}`)
	got := DecodeNested(in)

	want := NewMapping().
		Set("a", Sequence(Int(1), Int(2))).
		Set("b", NewMapping().Set("c", String("x")).Value()).
		Set("d", String("plain")).
		Value()
	assert.True(t, want.Equal(got), "got %s", got)
}

func TestDecodeNestedScalars(t *testing.T) {
	for _, v := range []Value{Int(1), String("abc"), String("42"), Bool(false), Null()} {
		assert.Equal(t, v, DecodeNested(v))
	}
}

func TestFromAny(t *testing.T) {
	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`{"b":[1,"x",true,null],"a":2.5}`), &decoded))

	got := FromAny(decoded)
	require.Equal(t, KindMapping, got.Kind())
	assert.Equal(t, []string{"a", "b"}, got.Keys())

	s, err := EncodeDisplay(got)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2.5,"b":[1,"x",true,null]}`, s)

	assert.Equal(t, String("NaN"), FromAny(math.NaN()))
	assert.Equal(t, "3", FromAny(float64(3)).Text())
	assert.Equal(t, KindUnsupported, FromAny(struct{}{}).Kind())
}

func TestValueJSON(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"k":[1,{"q":"r"}]}`), &v))
	assert.Equal(t, KindMapping, v.Kind())

	data, err := json.Marshal(map[string]Value{"v": v})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":{"k":[1,{"q":"r"}]}}`, string(data))

	_, err = json.Marshal(Unsupported("func()"))
	assert.Error(t, err)
}

func TestMappingWith(t *testing.T) {
	base := NewMapping().Set("gts", Sequence()).Set("globalParams", Null()).Value()
	updated := base.With("globalParams", NewMapping().Set("xLabel", String("t")).Value())

	assert.Equal(t, []string{"gts", "globalParams"}, updated.Keys())
	old, _ := base.Field("globalParams")
	assert.Equal(t, KindNull, old.Kind(), "With must not mutate the receiver")
}
