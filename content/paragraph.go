package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Drolfothesgnir/stackmark/backend"
	"github.com/Drolfothesgnir/stackmark/render"
)

type Paragraph struct {
	Typed
	Markdown string `json:"markdown"` // Required. Inline rich text, e.g. ***bold+italic***
}

// NewParagraph parses raw json paragraph data, validates it and returns new Paragraph.
func NewParagraph(raw json.RawMessage) (*Paragraph, error) {
	var p Paragraph
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	if p.Type != TypeParagraph {
		return nil, fmt.Errorf("paragraph: expected type %q, got %q", TypeParagraph, p.Type)
	}

	if strings.TrimSpace(p.Markdown) == "" {
		return nil, errors.New("paragraph: markdown is required")
	}

	return &p, nil
}

func (p *Paragraph) HTML(parse backend.ParseFunc, opts render.Options) (string, error) {
	inner, err := inlineHTML(parse, p.Markdown, opts)
	if err != nil {
		return "", err
	}
	return "<p>" + inner + "</p>", nil
}

// inlineHTML parses a markdown snippet and renders it.
func inlineHTML(parse backend.ParseFunc, input string, opts render.Options) (string, error) {
	root, err := parse(input)
	if err != nil {
		return "", fmt.Errorf("failed to parse markdown: %w", err)
	}
	return render.HTML(root, opts), nil
}
