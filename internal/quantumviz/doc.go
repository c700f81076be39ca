// Package quantumviz renders store entries as QuantumViz widgets.
//
// A render document names the series to draw:
//
//	{
//	  "type": "graph",
//	  "default-height": "400px",
//	  "data": [{"series": "temps", "interpolate": "step-before", "xLabel": "time"}]
//	}
//
// Each series value is normalized into an array of {gts, globalParams}
// envelopes before being handed to the widget. defaultHeight and
// defaultWidth are accepted as deprecated spellings of default-height and
// default-width.
package quantumviz
