package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Drolfothesgnir/stackmark/backend"
	"github.com/Drolfothesgnir/stackmark/markdown"
	"github.com/Drolfothesgnir/stackmark/render"
	"github.com/yuin/goldmark/util"
)

const (
	ListStyleBullet   = "bullet"
	ListStyleNumbered = "numbered"
)

type List struct {
	Typed
	Style string   `json:"style"` // Required. Can be one of "bullet" or "numbered".
	Items []string `json:"items"` // Required, not empty. Each element can be a markdown.
}

func NewList(raw json.RawMessage) (*List, error) {
	var l List
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}

	if l.Type != TypeList {
		return nil, fmt.Errorf("list: expected type %q, got %q", TypeList, l.Type)
	}

	if l.Style != ListStyleBullet && l.Style != ListStyleNumbered {
		return nil, fmt.Errorf("list: unknown style %q", l.Style)
	}

	if len(l.Items) == 0 {
		return nil, errors.New("list: items must not be empty")
	}

	return &l, nil
}

func (l *List) HTML(parse backend.ParseFunc, opts render.Options) (string, error) {
	tag := "ul"
	if l.Style == ListStyleNumbered {
		tag = "ol"
	}

	var b strings.Builder
	b.WriteString("<" + tag + ">")
	for i, item := range l.Items {
		inner, err := inlineHTML(parse, item, opts)
		if err != nil {
			return "", fmt.Errorf("list item[%d]: %w", i, err)
		}
		b.WriteString("<li>" + inner + "</li>")
	}
	b.WriteString("</" + tag + ">")

	return b.String(), nil
}

type Code struct {
	Typed
	Language string `json:"language"` // Optional. Can be "go", "js", "sql", etc.
	Code     string `json:"code"`     // Required.
}

func NewCode(raw json.RawMessage) (*Code, error) {
	var c Code
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}

	if c.Type != TypeCode {
		return nil, fmt.Errorf("code: expected type %q, got %q", TypeCode, c.Type)
	}

	if strings.TrimSpace(c.Code) == "" {
		return nil, errors.New("code: code is required")
	}

	c.Language = strings.TrimSpace(c.Language)
	if c.Language == "" {
		c.Language = markdown.LanguageText
	}

	return &c, nil
}

// HTML renders the code block the same way a fenced block is rendered.
// The code is never parsed as markdown.
func (c *Code) HTML(_ backend.ParseFunc, opts render.Options) (string, error) {
	root := markdown.NewNode(markdown.NodeRoot)
	root.AppendNode(markdown.NewCodeNode(c.Language, c.Code))
	return render.HTML(root, opts), nil
}

type Quote struct {
	Typed
	Markdown string `json:"markdown"` // Required. Quote's body.
	Author   string `json:"author"`   // Optional.
}

func NewQuote(raw json.RawMessage) (*Quote, error) {
	var q Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, err
	}

	if q.Type != TypeQuote {
		return nil, fmt.Errorf("quote: expected type %q, got %q", TypeQuote, q.Type)
	}

	if strings.TrimSpace(q.Markdown) == "" {
		return nil, errors.New("quote: markdown is required")
	}

	q.Author = strings.TrimSpace(q.Author)

	return &q, nil
}

func (q *Quote) HTML(parse backend.ParseFunc, opts render.Options) (string, error) {
	inner, err := inlineHTML(parse, q.Markdown, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<blockquote>\n<p>" + inner + "</p>\n")
	if q.Author != "" {
		b.WriteString("<footer>")
		b.Write(util.EscapeHTML([]byte(q.Author)))
		b.WriteString("</footer>\n")
	}
	b.WriteString("</blockquote>")

	return b.String(), nil
}

// Content divider.
type Divider struct {
	Typed
}

func NewDivider(raw json.RawMessage) (*Divider, error) {
	var d Divider
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}

	if d.Type != TypeDivider {
		return nil, fmt.Errorf("divider: expected type %q, got %q", TypeDivider, d.Type)
	}

	return &d, nil
}

func (d *Divider) HTML(backend.ParseFunc, render.Options) (string, error) {
	return "<hr>", nil
}
