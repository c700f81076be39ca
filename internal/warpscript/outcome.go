package warpscript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Remote engine diagnostic headers.
const (
	HeaderErrorLine    = "X-Warp10-Error-Line"
	HeaderErrorMessage = "X-Warp10-Error-Message"
)

// Status tags an Outcome.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// Outcome is the classified result of one exec call. Body holds the stack
// JSON on success and the synthesized diagnostic on failure.
type Outcome struct {
	Status     Status
	Body       string
	StatusCode int
}

// TransportError is a connection or I/O failure before a status was read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// diagnostic is serialized in field order.
type diagnostic struct {
	ErrorLine    any     `json:"Error-Line"`
	ErrorMessage *string `json:"Error-Message"`
	Body         *string `json:"Body,omitempty"`
}

// buildDiagnostic renders the one element array reported for non-200
// answers. Absent headers become null; a non numeric line stays a string.
func buildDiagnostic(line, message []string, body *string) (string, error) {
	d := diagnostic{Body: body}
	if len(line) > 0 {
		if n, err := strconv.ParseInt(strings.TrimSpace(line[0]), 10, 64); err == nil {
			d.ErrorLine = n
		} else {
			d.ErrorLine = line[0]
		}
	}
	if len(message) > 0 {
		msg := message[0]
		d.ErrorMessage = &msg
	}

	out, err := sonic.ConfigDefault.MarshalToString([]diagnostic{d})
	if err != nil {
		return "", fmt.Errorf("encode diagnostic: %w", err)
	}
	return out, nil
}

// captureBody reports whether the error body is kept for a content type.
func captureBody(contentType string) bool {
	return contentType == "" || !strings.HasPrefix(contentType, "text/html")
}

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

// joinLines drops line terminators the way a line-by-line reader would.
func joinLines(s string) string {
	return lineBreaks.Replace(s)
}
