package content

import (
	"github.com/Drolfothesgnir/stackmark/backend"
	"github.com/Drolfothesgnir/stackmark/render"
)

// Kind defines the type of the section, e.g. "default", "note", "faq"
type Kind string

const (
	KindDefault Kind = "default"
)

type Type string

const (
	TypeParagraph Type = "paragraph"
	TypeList      Type = "list"
	TypeCode      Type = "code"
	TypeQuote     Type = "quote"
	TypeDivider   Type = "divider"
)

// ContentItem is a single block of a section.
type ContentItem interface {
	ContentType() Type

	// HTML renders the item. Inline markdown is parsed with parse.
	HTML(parse backend.ParseFunc, opts render.Options) (string, error)
}

type Typed struct {
	Type Type `json:"type"` // Required.
}

func (t Typed) ContentType() Type { return t.Type }
