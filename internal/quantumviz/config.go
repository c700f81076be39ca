package quantumviz

import (
	"strings"

	"github.com/bytedance/sonic"
)

// Chart types and the widget each one renders with.
const (
	TypeGraph = "graph"
	TypeGeo   = "geo"
)

var widgetTags = map[string]string{
	TypeGraph: "warp10-display-chart",
	TypeGeo:   "warp10-display-map",
}

// Document keys. The camel case pair is the deprecated spelling of the
// dimension defaults and is read only when the canonical key is absent.
const (
	KeyType          = "type"
	KeyData          = "data"
	KeySeries        = "series"
	KeyHeight        = "height"
	KeyWidth         = "width"
	KeyDefaultHeight = "default-height"
	KeyDefaultWidth  = "default-width"

	legacyDefaultHeight = "defaultHeight"
	legacyDefaultWidth  = "defaultWidth"
)

// Fallback dimensions when the document sets none.
const (
	DefaultHeight = "600px"
	DefaultWidth  = "100%"
)

// Document is a validated render request.
type Document struct {
	Type   string
	Height string
	Width  string
	// Series holds the raw series configs in order.
	Series []map[string]any
}

// Tag is the widget element name for the document type.
func (d *Document) Tag() string {
	return widgetTags[d.Type]
}

// ParseDocument runs the document level checks in order: JSON, data
// presence, type, default dimensions, data shape.
func ParseDocument(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, renderErr(KindInvalidInput, "configuration is empty")
	}
	var raw any
	if err := sonic.UnmarshalString(text, &raw); err != nil {
		return nil, renderErr(KindInvalidInput, "configuration is not valid JSON: %v", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, renderErr(KindInvalidInput, "configuration must be a JSON object")
	}

	data, ok := obj[KeyData]
	if !ok {
		return nil, renderErr(KindMissingData, "configuration has no %q key", KeyData)
	}

	doc := &Document{Type: TypeGraph}
	if t, present := obj[KeyType]; present {
		s, isString := t.(string)
		if !isString || widgetTags[s] == "" {
			return nil, renderErr(KindInvalidType, "type must be %q or %q, got %v", TypeGraph, TypeGeo, t)
		}
		doc.Type = s
	}

	var err error
	if doc.Height, err = defaultDimension(obj, KeyDefaultHeight, legacyDefaultHeight, DefaultHeight, ValidHeight); err != nil {
		return nil, err
	}
	if doc.Width, err = defaultDimension(obj, KeyDefaultWidth, legacyDefaultWidth, DefaultWidth, ValidWidth); err != nil {
		return nil, err
	}

	switch d := data.(type) {
	case map[string]any:
		doc.Series = []map[string]any{d}
	case []any:
		doc.Series = make([]map[string]any, 0, len(d))
		for i, elem := range d {
			series, isObject := elem.(map[string]any)
			if !isObject {
				return nil, renderErr(KindInvalidDataShape, "data[%d] must be a JSON object", i)
			}
			doc.Series = append(doc.Series, series)
		}
	default:
		return nil, renderErr(KindInvalidDataShape, "data must be a JSON object or an array of JSON objects")
	}
	return doc, nil
}

func defaultDimension(obj map[string]any, key, legacy, fallback string, valid func(string) bool) (string, error) {
	if _, ok := obj[key]; ok {
		return dimension(obj, key, fallback, valid)
	}
	return dimension(obj, legacy, fallback, valid)
}

// SeriesName returns the store key a series config points at.
func SeriesName(cfg map[string]any) (string, error) {
	raw, ok := cfg[KeySeries]
	if !ok {
		return "", renderErr(KindInvalidSeriesKey, "series config has no %q key", KeySeries)
	}
	name, isString := raw.(string)
	if !isString {
		return "", renderErr(KindInvalidSeriesKey, "%q must be a string, got %v", KeySeries, raw)
	}
	return name, nil
}
