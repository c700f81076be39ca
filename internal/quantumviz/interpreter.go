package quantumviz

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/interpreter"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
)

const (
	// Name is the registry name of the interpreter.
	Name = "quantumviz"
	// URLKey is the property naming the widget asset base URL.
	URLKey = "quantumviz.url"
)

// ErrNoBaseURL is returned by Open when no asset URL is configured.
var ErrNoBaseURL = errors.New("quantumviz: no " + URLKey + " configured")

// Interpreter renders store entries with the QuantumViz widgets.
type Interpreter struct {
	renderer Renderer
	logger   *zap.Logger
	open     bool
}

// New creates an interpreter serving widget assets from baseURL.
func New(baseURL string, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{renderer: Renderer{BaseURL: baseURL}, logger: logger.Named(Name)}
}

func (q *Interpreter) Definition() interpreter.Definition {
	return interpreter.Definition{
		Name:        Name,
		Description: "Renders shared series with QuantumViz chart and map widgets",
		Properties: []interpreter.Property{
			{Key: URLKey, Description: "The URL for QuantumViz."},
		},
	}
}

// Open requires an absolute asset URL. There is no default.
func (q *Interpreter) Open(ctx context.Context) error {
	if q.renderer.BaseURL == "" {
		return ErrNoBaseURL
	}
	u, err := url.Parse(q.renderer.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s %q", URLKey, q.renderer.BaseURL)
	}
	q.open = true
	q.logger.Info("quantumviz interpreter opened", zap.String("base_url", q.renderer.BaseURL))
	return nil
}

func (q *Interpreter) Close() error {
	q.open = false
	return nil
}

func (q *Interpreter) Cancel(*interpreter.Context) {}

func (q *Interpreter) FormType() interpreter.FormType { return interpreter.FormSimple }

func (q *Interpreter) Progress(*interpreter.Context) int { return 0 }

func (q *Interpreter) Completion(string, int) []string { return nil }

// Interpret treats body as a render document.
func (q *Interpreter) Interpret(ctx context.Context, body string, ictx *interpreter.Context) *interpreter.Result {
	if !q.open {
		return interpreter.Failure("quantumviz interpreter is not open")
	}

	var resources store.Store
	if ictx != nil {
		resources = ictx.Resources
	}

	markup, err := q.renderer.Render(body, resources)
	if err != nil {
		q.logger.Warn("render rejected", zap.Error(err))
		return interpreter.Failure(err.Error())
	}
	return interpreter.HTML(markup)
}
