package warpscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

func TestImportNames(t *testing.T) {
	tests := []struct {
		name    string
		program string
		want    []string
	}{
		{name: "no import line", program: "1 2 +", want: nil},
		{name: "import later", program: "1\n//import a", want: nil},
		{name: "single", program: "//import a\nNOW", want: []string{"a"}},
		{name: "whitespace runs", program: "//import  a\tb   c\r\nNOW", want: []string{"a", "b", "c"}},
		{name: "marker only", program: "//import", want: []string{}},
		{name: "marker glued to a word", program: "//importx a\nNOW", want: nil},
		{name: "marker glued to a name", program: "//importa b", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImportNames(tt.program))
		})
	}
}

func TestPreamble(t *testing.T) {
	resources := store.NewMemory()
	resources.Put("n", value.Number("1.5"))
	resources.Put("list", value.Sequence(value.Int(1), value.String("a")))
	resources.Put("m", value.NewMapping().Set("k", value.Bool(true)).Value())

	got, count, err := Preamble([]string{"m", "absent", "n", "list"}, resources)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "'{\"k\":true}' JSON-> 'm' STORE\n1.5 'n' STORE\n'[1,\"a\"]' JSON-> 'list' STORE\n", got)
}

func TestPreambleWithoutStore(t *testing.T) {
	got, count, err := Preamble([]string{"a"}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, count)
}

func TestExportResults(t *testing.T) {
	t.Run("string holding an object is exported", func(t *testing.T) {
		resources := store.NewMemory()
		n, err := ExportResults(`["{\"k\":\"v\"}"]`, resources)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		v, _ := resources.Get("k")
		assert.Equal(t, value.String("v"), v)
	})

	t.Run("non map top is ignored", func(t *testing.T) {
		resources := store.NewMemory()
		n, err := ExportResults(`[[1,2],{"k":1}]`, resources)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, resources.Len())
	})

	t.Run("empty stack", func(t *testing.T) {
		n, err := ExportResults(`[]`, store.NewMemory())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("scalar json", func(t *testing.T) {
		_, err := ExportResults(`42`, store.NewMemory())
		assert.Error(t, err)
	})
}
