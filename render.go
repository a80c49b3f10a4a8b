package mdhtml

import (
	"fmt"
	"io"
)

// Document is a converted Markdown source.
type Document struct {
	// FrontMatter is nil when the source had none or it was kept in the body.
	FrontMatter FrontMatter
	Root        *Container

	fragment bool
}

// HTML renders the document the way Render writes it: a blank document is
// the empty string.
func (d *Document) HTML() (string, error) {
	return renderRoot(d.Root, renderConfig{fragment: d.fragment})
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []RenderOption
}

// ParseRequest configures Parse.
type ParseRequest struct {
	Reader  io.Reader
	Options []RenderOption
}

// Render converts Markdown read from Reader and writes HTML to Writer. Nothing
// is written when conversion fails.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := newRenderConfig(req.Options)
	doc, err := parse(req.Reader, cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	out, err := renderRoot(doc.Root, cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := io.WriteString(req.Writer, out); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

// Parse reads a whole Markdown source and builds its document tree.
func Parse(req ParseRequest) (*Document, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("parse: reader is nil")
	}
	doc, err := parse(req.Reader, newRenderConfig(req.Options))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return doc, nil
}

func parse(r io.Reader, cfg renderConfig) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return nil, err
	}
	doc := &Document{fragment: cfg.fragment}
	body := src
	if !cfg.keepFrontMatter {
		doc.FrontMatter, body, err = ParseFrontMatter(src)
		if err != nil {
			return nil, err
		}
		if doc.FrontMatter != nil {
			cfg.logger.Debug("front matter", "keys", len(doc.FrontMatter))
		}
	}
	doc.Root, err = convert(sanitize(string(body)), cfg)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
