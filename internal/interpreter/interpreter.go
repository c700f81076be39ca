package interpreter

import (
	"context"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
)

// Code is the outcome tag of a paragraph run.
type Code string

const (
	CodeSuccess Code = "SUCCESS"
	CodeError   Code = "ERROR"
)

// OutputType tells the notebook how to display a message.
type OutputType string

const (
	TypeText OutputType = "TEXT"
	TypeHTML OutputType = "HTML"
)

// FormType describes the paragraph form support.
type FormType string

// FormSimple supports ${name} style paragraph forms.
const FormSimple FormType = "SIMPLE"

// Context is handed to every Interpret call.
type Context struct {
	ParagraphID string
	Resources   store.Store
}

// Result is what a paragraph run produces.
type Result struct {
	Code    Code       `json:"code"`
	Type    OutputType `json:"type"`
	Message string     `json:"msg"`
}

// Success builds a text success result.
func Success(msg string) *Result {
	return &Result{Code: CodeSuccess, Type: TypeText, Message: msg}
}

// HTML builds an HTML success result.
func HTML(markup string) *Result {
	return &Result{Code: CodeSuccess, Type: TypeHTML, Message: markup}
}

// Failure builds a text error result.
func Failure(msg string) *Result {
	return &Result{Code: CodeError, Type: TypeText, Message: msg}
}

// Definition describes an interpreter for discovery.
type Definition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Properties  []Property `json:"properties"`
}

// Property documents one configuration value an interpreter reads.
type Property struct {
	Key          string `json:"key"`
	DefaultValue string `json:"default_value,omitempty"`
	Description  string `json:"description"`
}

// Interpreter is the notebook boundary implemented by warpscript and
// quantumviz. Interpret must not panic and always returns a result.
type Interpreter interface {
	Definition() Definition
	Open(ctx context.Context) error
	Close() error
	Interpret(ctx context.Context, body string, ictx *Context) *Result
	Cancel(ictx *Context)
	FormType() FormType
	Progress(ictx *Context) int
	Completion(buf string, cursor int) []string
}
