package interpreter

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Recorder receives per-run measurements.
type Recorder interface {
	RecordInterpret(name, code string, duration time.Duration)
}

// Registry holds opened interpreters by name.
type Registry struct {
	mu           sync.RWMutex
	interpreters map[string]Interpreter
	recorder     Recorder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{interpreters: make(map[string]Interpreter)}
}

// WithMetrics attaches a recorder.
func (r *Registry) WithMetrics(rec Recorder) *Registry {
	r.recorder = rec
	return r
}

// Register opens the interpreter and makes it available under its
// definition name.
func (r *Registry) Register(ctx context.Context, in Interpreter) error {
	def := in.Definition()
	if def.Name == "" {
		return fmt.Errorf("interpreter name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.interpreters[def.Name]; exists {
		return fmt.Errorf("interpreter already registered: %s", def.Name)
	}
	if err := in.Open(ctx); err != nil {
		return fmt.Errorf("open %s: %w", def.Name, err)
	}
	r.interpreters[def.Name] = in
	return nil
}

// Get retrieves an interpreter by name.
func (r *Registry) Get(name string) (Interpreter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	in, ok := r.interpreters[name]
	return in, ok
}

// List returns definitions sorted by name.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.interpreters))
	for _, in := range r.interpreters {
		defs = append(defs, in.Definition())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Interpret runs body through the named interpreter.
func (r *Registry) Interpret(ctx context.Context, name, body string, ictx *Context) (*Result, error) {
	in, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("interpreter not found: %s", name)
	}

	start := time.Now()
	res := in.Interpret(ctx, body, ictx)
	if res == nil {
		res = Failure("interpreter returned no result")
	}
	if r.recorder != nil {
		r.recorder.RecordInterpret(name, string(res.Code), time.Since(start))
	}
	return res, nil
}

// Close closes every interpreter and empties the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for name, in := range r.interpreters {
		if err := in.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", name, err)
		}
	}
	r.interpreters = make(map[string]Interpreter)
	return firstErr
}

// Stats returns registry statistics.
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.interpreters))
	for name := range r.interpreters {
		names = append(names, name)
	}
	sort.Strings(names)
	return map[string]interface{}{
		"total_interpreters": len(names),
		"interpreters":       names,
	}
}
