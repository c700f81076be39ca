package quantumviz

import (
	"strings"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

// Global parameter keys understood by the display widgets.
const (
	ParamInterpolate = "interpolate"
	ParamTimestamps  = "timestamps"
	ParamXLabel      = "xLabel"
	ParamYLabel      = "yLabel"
)

var interpolations = map[string]bool{
	"linear":      true,
	"cardinal":    true,
	"step-before": true,
}

// ParamSet holds the global parameters a series config supplied. Nil
// fields were not supplied.
type ParamSet struct {
	Interpolate *string
	Timestamps  *bool
	XLabel      *string
	YLabel      *string
}

// ParseParams validates the recognized keys of a series config. Unknown
// keys are ignored. Labels that are not strings are skipped without error;
// interpolate and timestamps must be valid.
func ParseParams(cfg map[string]any) (ParamSet, error) {
	var p ParamSet

	if raw, ok := cfg[ParamInterpolate]; ok {
		s, isString := raw.(string)
		if !isString || !interpolations[s] {
			return ParamSet{}, renderErr(KindInvalidParamValue,
				"interpolate must be one of linear, cardinal, step-before, got %v", raw)
		}
		p.Interpolate = &s
	}

	if raw, ok := cfg[ParamTimestamps]; ok {
		b, err := parseTimestamps(raw)
		if err != nil {
			return ParamSet{}, err
		}
		p.Timestamps = &b
	}

	if s, ok := cfg[ParamXLabel].(string); ok {
		p.XLabel = &s
	}
	if s, ok := cfg[ParamYLabel].(string); ok {
		p.YLabel = &s
	}
	return p, nil
}

func parseTimestamps(raw any) (bool, error) {
	switch t := raw.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, renderErr(KindInvalidParamValue, "timestamps must be a boolean, got %v", raw)
}

// Value builds a fresh globalParams mapping.
func (p ParamSet) Value() value.Value {
	return p.MergeInto(value.NewMapping().Value())
}

// MergeInto overwrites the supplied keys of an existing globalParams
// mapping, keeping everything else.
func (p ParamSet) MergeInto(existing value.Value) value.Value {
	m := existing.Builder()
	if p.Interpolate != nil {
		m.Set(ParamInterpolate, value.String(*p.Interpolate))
	}
	if p.Timestamps != nil {
		m.Set(ParamTimestamps, value.Bool(*p.Timestamps))
	}
	if p.XLabel != nil {
		m.Set(ParamXLabel, value.String(*p.XLabel))
	}
	if p.YLabel != nil {
		m.Set(ParamYLabel, value.String(*p.YLabel))
	}
	return m.Value()
}
