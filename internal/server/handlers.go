package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/interpreter"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/monitoring"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	registry  *interpreter.Registry
	resources *store.Memory
	metrics   *monitoring.Metrics
	logger    *zap.Logger
}

// NewHandlers creates a new handler set.
func NewHandlers(registry *interpreter.Registry, resources *store.Memory, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{registry: registry, resources: resources, metrics: metrics, logger: logger}
}

// RunRequest is the body of POST /interpreters/:name/run.
type RunRequest struct {
	Text        string `json:"text"`
	ParagraphID string `json:"paragraph_id"`
}

// Health reports the registry and store state.
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":       "healthy",
		"interpreters": h.registry.Stats(),
		"store":        gin.H{"entries": h.resources.Len()},
	}
	if h.metrics != nil {
		resp["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, resp)
}

// ListInterpreters lists the registered interpreter definitions.
func (h *Handlers) ListInterpreters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"interpreters": h.registry.List()})
}

// Run executes one paragraph. Interpreter errors come back as an ERROR
// result with status 200; only routing and decoding problems are HTTP
// errors.
func (h *Handlers) Run(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.registry.Get(name); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "interpreter not found: " + name})
		return
	}

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ictx := &interpreter.Context{ParagraphID: req.ParagraphID, Resources: h.resources}
	res, err := h.registry.Interpret(c.Request.Context(), name, req.Text, ictx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListResources lists store entry names.
func (h *Handlers) ListResources(c *gin.Context) {
	names := h.resources.Names()
	c.JSON(http.StatusOK, gin.H{"resources": names, "count": len(names)})
}

// GetResource returns one store entry.
func (h *Handlers) GetResource(c *gin.Context) {
	name := c.Param("name")
	v, ok := h.resources.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found: " + name})
		return
	}
	if _, err := value.EncodeDisplay(v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "value": v})
}

// PutResource stores the JSON request body under name.
func (h *Handlers) PutResource(c *gin.Context) {
	name := c.Param("name")
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var v value.Value
	if err := v.UnmarshalJSON(raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be JSON: " + err.Error()})
		return
	}

	h.resources.Put(name, v)
	h.recordWrite("put")
	h.logger.Debug("resource stored", zap.String("name", name), zap.String("kind", v.Kind().String()))
	c.JSON(http.StatusOK, gin.H{"name": name, "value": v})
}

// DeleteResource removes name from the store.
func (h *Handlers) DeleteResource(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.resources.Get(name); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found: " + name})
		return
	}
	h.resources.Remove(name)
	h.recordWrite("remove")
	c.Status(http.StatusNoContent)
}

func (h *Handlers) recordWrite(op string) {
	if h.metrics != nil {
		h.metrics.RecordStoreWrite(op)
	}
}
