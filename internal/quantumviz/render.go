package quantumviz

import (
	"fmt"
	"strings"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

// Renderer turns render requests into widget markup whose assets are
// served from BaseURL.
type Renderer struct {
	BaseURL string
}

// Block is one rendered series.
type Block struct {
	Tag      string
	Height   string
	Width    string
	Envelope string
}

// Markup renders the widget element. The envelope goes into a single
// quoted attribute as is.
func (b Block) Markup() string {
	return fmt.Sprintf(`<div><%s style="height:%s;max-width:%s;" data='%s'></%s></div>`,
		b.Tag, b.Height, b.Width, b.Envelope, b.Tag)
}

// Blocks validates the request and builds one block per series config.
// It stops at the first invalid series.
func Blocks(config string, resources store.Store) ([]Block, error) {
	doc, err := ParseDocument(config)
	if err != nil {
		return nil, err
	}

	blocks := make([]Block, 0, len(doc.Series))
	for i, cfg := range doc.Series {
		block, err := renderSeries(doc, cfg, resources)
		if err != nil {
			if re, ok := err.(*RenderError); ok && len(doc.Series) > 1 {
				return nil, &RenderError{Kind: re.Kind, Message: fmt.Sprintf("data[%d]: %s", i, re.Message)}
			}
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func renderSeries(doc *Document, cfg map[string]any, resources store.Store) (Block, error) {
	name, err := SeriesName(cfg)
	if err != nil {
		return Block{}, err
	}

	height, err := dimension(cfg, KeyHeight, doc.Height, ValidHeight)
	if err != nil {
		return Block{}, err
	}
	width, err := dimension(cfg, KeyWidth, doc.Width, ValidWidth)
	if err != nil {
		return Block{}, err
	}

	if resources == nil {
		return Block{}, renderErr(KindSeriesNotFound, "no store available for series %q", name)
	}
	stored, ok := resources.Get(name)
	if !ok {
		return Block{}, renderErr(KindSeriesNotFound, "series %q not found", name)
	}
	text, err := value.EncodeDisplay(stored)
	if err != nil {
		return Block{}, renderErr(KindInvalidDataShape, "series %q: %v", name, err)
	}

	params, err := ParseParams(cfg)
	if err != nil {
		return Block{}, err
	}
	envelope, err := NormalizeText(text, params)
	if err != nil {
		if re, ok := err.(*RenderError); ok {
			return Block{}, &RenderError{Kind: re.Kind, Message: fmt.Sprintf("series %q: %s", name, re.Message)}
		}
		return Block{}, err
	}

	return Block{Tag: doc.Tag(), Height: height, Width: width, Envelope: envelope}, nil
}

// Render returns the asset header followed by every block.
func (r *Renderer) Render(config string, resources store.Store) (string, error) {
	blocks, err := Blocks(config, resources)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(r.header(blocks))
	for _, block := range blocks {
		b.WriteString(block.Markup())
	}
	return b.String(), nil
}

// header loads the web components polyfill once per page and imports
// polymer plus each widget the blocks use.
func (r *Renderer) header(blocks []Block) string {
	base := strings.TrimRight(r.BaseURL, "/")

	var b strings.Builder
	b.WriteString("<script> if (!jsCode) {var jsCode = document.createElement('script');")
	fmt.Fprintf(&b, "jsCode.setAttribute('src', '%s/webcomponentsjs/webcomponents-lite.js'); ", base)
	b.WriteString("document.body.appendChild(jsCode); } </script> ")
	fmt.Fprintf(&b, `<link rel="import" href="%s/polymer/polymer.html"> `, base)

	seen := make(map[string]bool)
	for _, block := range blocks {
		if seen[block.Tag] {
			continue
		}
		seen[block.Tag] = true
		fmt.Fprintf(&b, `<link rel="import" href="%s/warp10-quantumviz/%s.html"> `, base, block.Tag)
	}
	return b.String()
}
