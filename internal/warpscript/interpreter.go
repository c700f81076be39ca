package warpscript

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/interpreter"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

const (
	// Name is the registry name of the interpreter.
	Name = "warpscript"
	// URLKey is the property naming the engine base URL.
	URLKey = "warp10.url"
	// DefaultURL is used when no base URL is configured.
	DefaultURL = "http://localhost:8080/api/v0"
)

// Config is fixed at construction.
type Config struct {
	URL       string
	RateLimit float64
}

// Interpreter runs WarpScript paragraphs against a remote engine.
//
// A first line starting with //import pulls the named store entries into
// the program. When the answer's first stack element is a map, every entry
// is written back to the store (null entries are removed).
type Interpreter struct {
	cfg    Config
	client *Client
	logger *zap.Logger
}

// New creates an interpreter. Open must be called before Interpret.
func New(cfg Config, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	return &Interpreter{cfg: cfg, logger: logger.Named(Name)}
}

// Definition describes the interpreter.
func (w *Interpreter) Definition() interpreter.Definition {
	return interpreter.Definition{
		Name:        Name,
		Description: "Executes WarpScript on a Warp 10 endpoint and shares exported maps",
		Properties: []interpreter.Property{
			{Key: URLKey, DefaultValue: DefaultURL, Description: "The URL for Warp10."},
		},
	}
}

// URL is the configured engine base URL.
func (w *Interpreter) URL() string { return w.cfg.URL }

// Open validates the base URL and builds the client.
func (w *Interpreter) Open(ctx context.Context) error {
	u, err := url.Parse(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", URLKey, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s %q: scheme must be http or https", URLKey, w.cfg.URL)
	}
	w.client = NewClient(w.cfg.URL, ClientOptions{RateLimit: w.cfg.RateLimit, Logger: w.logger})
	w.logger.Info("warpscript interpreter opened", zap.String("endpoint", w.client.Endpoint()))
	return nil
}

// Close releases the client connections.
func (w *Interpreter) Close() error {
	if w.client != nil {
		w.client.Close()
	}
	return nil
}

// Cancel is not supported; a running request completes on its own.
func (w *Interpreter) Cancel(*interpreter.Context) {}

// FormType returns SIMPLE.
func (w *Interpreter) FormType() interpreter.FormType { return interpreter.FormSimple }

// Progress is always 0.
func (w *Interpreter) Progress(*interpreter.Context) int { return 0 }

// Completion is not supported.
func (w *Interpreter) Completion(string, int) []string { return nil }

// Interpret runs body and returns exactly one result.
func (w *Interpreter) Interpret(ctx context.Context, body string, ictx *interpreter.Context) *interpreter.Result {
	if w.client == nil {
		return interpreter.Failure("warpscript interpreter is not open")
	}

	var resources store.Store
	if ictx != nil {
		resources = ictx.Resources
	}

	names := ImportNames(body)
	preamble, imported, err := Preamble(names, resources)
	if err != nil {
		w.logger.Warn("import preamble failed", zap.Error(err))
		return interpreter.Failure(err.Error())
	}

	program := io.MultiReader(strings.NewReader(preamble), strings.NewReader(body), strings.NewReader("\n"))
	outcome, err := w.client.Exec(ctx, program)
	if err != nil {
		return interpreter.Failure(err.Error())
	}

	w.logger.Info("warpscript executed",
		zap.String("status", outcome.Status.String()),
		zap.Int("http_status", outcome.StatusCode),
		zap.Int("imports", imported),
	)

	if outcome.Status != StatusSuccess {
		return &interpreter.Result{Code: interpreter.CodeError, Type: interpreter.TypeText, Message: outcome.Body + "\n"}
	}

	exported, err := ExportResults(outcome.Body, resources)
	if err != nil {
		return interpreter.Failure(err.Error())
	}
	if exported > 0 {
		w.logger.Debug("exported stack map to store", zap.Int("entries", exported))
	}
	return interpreter.Success(outcome.Body + "\n")
}

// ExportResults writes the map on top of the stack into resources. Only
// the first stack element is considered. It returns the number of entries
// written or removed.
func ExportResults(body string, resources store.Store) (int, error) {
	out := value.Parse(body)
	if out.Shape != value.ShapeArray {
		if out.Err != nil {
			return 0, fmt.Errorf("response is not a JSON array: %w", out.Err)
		}
		return 0, fmt.Errorf("response is not a JSON array")
	}

	items := out.Value.Items()
	if len(items) == 0 || resources == nil {
		return 0, nil
	}

	top := value.DecodeNested(items[0])
	if top.Kind() != value.KindMapping {
		return 0, nil
	}

	for _, key := range top.Keys() {
		v, _ := top.Field(key)
		if v.Kind() == value.KindNull {
			resources.Remove(key)
		} else {
			resources.Put(key, v)
		}
	}
	return top.Len(), nil
}
