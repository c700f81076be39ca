package warpscript

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/interpreter"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

// fakeEngine answers every exec with a fixed status and body and records
// the last program it received.
type fakeEngine struct {
	server  *httptest.Server
	program string
}

func newFakeEngine(t *testing.T, status int, body string) *fakeEngine {
	e := &fakeEngine{}
	e.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		e.program = string(data)
		if status != http.StatusOK {
			w.Header().Set(HeaderErrorLine, "1")
			w.Header().Set(HeaderErrorMessage, "boom")
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(e.server.Close)
	return e
}

func openInterpreter(t *testing.T, url string) *Interpreter {
	w := New(Config{URL: url}, nil)
	require.NoError(t, w.Open(context.Background()))
	t.Cleanup(func() { w.Close() })
	return w
}

func TestInterpretImportsAndExports(t *testing.T) {
	engine := newFakeEngine(t, http.StatusOK, `[{"a":"[1,2]","b":42,"c":null,"d":"text"},{"ignored":1}]`)
	w := openInterpreter(t, engine.server.URL)

	resources := store.NewMemory()
	resources.Put("x", value.Int(5))
	resources.Put("s", value.String("hello"))
	resources.Put("c", value.String("stale"))

	res := w.Interpret(context.Background(), "//import x missing s\nDUP", &interpreter.Context{Resources: resources})

	require.Equal(t, interpreter.CodeSuccess, res.Code, res.Message)
	assert.Equal(t, interpreter.TypeText, res.Type)
	assert.Equal(t, `[{"a":"[1,2]","b":42,"c":null,"d":"text"},{"ignored":1}]`+"\n", res.Message)
	assert.Equal(t, "5 'x' STORE\n'hello' 's' STORE\n//import x missing s\nDUP\n", engine.program)

	a, ok := resources.Get("a")
	require.True(t, ok)
	assert.True(t, value.Sequence(value.Int(1), value.Int(2)).Equal(a))

	b, _ := resources.Get("b")
	assert.Equal(t, "42", b.Text())

	d, _ := resources.Get("d")
	assert.Equal(t, value.String("text"), d)

	_, ok = resources.Get("c")
	assert.False(t, ok, "null export removes the entry")
	_, ok = resources.Get("ignored")
	assert.False(t, ok, "only the first stack element is exported")
}

func TestInterpretWithoutImportLine(t *testing.T) {
	engine := newFakeEngine(t, http.StatusOK, `[1]`)
	w := openInterpreter(t, engine.server.URL)

	res := w.Interpret(context.Background(), "1\n//import x", &interpreter.Context{Resources: store.NewMemory()})
	require.Equal(t, interpreter.CodeSuccess, res.Code)
	assert.Equal(t, "1\n//import x\n", engine.program)
}

func TestInterpretRemoteFailure(t *testing.T) {
	engine := newFakeEngine(t, http.StatusInternalServerError, "stack underflow")
	w := openInterpreter(t, engine.server.URL)

	resources := store.NewMemory()
	res := w.Interpret(context.Background(), "DROP", &interpreter.Context{Resources: resources})

	assert.Equal(t, interpreter.CodeError, res.Code)
	assert.Equal(t, `[{"Error-Line":1,"Error-Message":"boom","Body":"stack underflow"}]`+"\n", res.Message)
	assert.Equal(t, 0, resources.Len())
}

func TestInterpretNonArraySuccess(t *testing.T) {
	engine := newFakeEngine(t, http.StatusOK, `{"a":1}`)
	w := openInterpreter(t, engine.server.URL)

	resources := store.NewMemory()
	res := w.Interpret(context.Background(), "x", &interpreter.Context{Resources: resources})

	assert.Equal(t, interpreter.CodeError, res.Code)
	assert.Contains(t, res.Message, "not a JSON array")
	assert.Equal(t, 0, resources.Len())
}

func TestInterpretUnsupportedImport(t *testing.T) {
	engine := newFakeEngine(t, http.StatusOK, `[]`)
	w := openInterpreter(t, engine.server.URL)

	resources := store.NewMemory()
	resources.Put("bad", value.Unsupported("func()"))

	res := w.Interpret(context.Background(), "//import bad\n", &interpreter.Context{Resources: resources})
	assert.Equal(t, interpreter.CodeError, res.Code)
	assert.Contains(t, res.Message, `import "bad"`)
	assert.Empty(t, engine.program, "nothing is sent when the preamble fails")
}

func TestInterpretTransportFailure(t *testing.T) {
	engine := newFakeEngine(t, http.StatusOK, `[]`)
	url := engine.server.URL
	engine.server.Close()

	w := openInterpreter(t, url)
	res := w.Interpret(context.Background(), "1", nil)
	assert.Equal(t, interpreter.CodeError, res.Code)
	assert.NotEmpty(t, res.Message)
}

func TestInterpretNotOpen(t *testing.T) {
	w := New(Config{}, nil)
	res := w.Interpret(context.Background(), "1", nil)
	assert.Equal(t, interpreter.CodeError, res.Code)
}

func TestOpen(t *testing.T) {
	w := New(Config{}, nil)
	assert.Equal(t, DefaultURL, w.URL())
	require.NoError(t, w.Open(context.Background()))
	assert.Equal(t, DefaultURL+"/exec", w.client.Endpoint())

	assert.Error(t, New(Config{URL: "ftp://example.com"}, nil).Open(context.Background()))
	assert.Error(t, New(Config{URL: "://bad"}, nil).Open(context.Background()))
}

func TestLifecycleHooks(t *testing.T) {
	w := New(Config{}, nil)
	assert.Equal(t, interpreter.FormSimple, w.FormType())
	assert.Equal(t, 0, w.Progress(nil))
	assert.Nil(t, w.Completion("FOO", 3))
	w.Cancel(nil)
	assert.NoError(t, w.Close())

	def := w.Definition()
	assert.Equal(t, Name, def.Name)
	require.Len(t, def.Properties, 1)
	assert.Equal(t, URLKey, def.Properties[0].Key)
}
