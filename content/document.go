package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Drolfothesgnir/stackmark/backend"
	"github.com/Drolfothesgnir/stackmark/render"
)

// DocumentVersion is the only supported document schema version.
const DocumentVersion int32 = 1

var ErrNotParsed = errors.New("document is not parsed")

// Document implements Schema and is used to parse, validate and render
// simple section based documents made of markdown blocks.
type Document struct {
	version  int32
	sections []Section
}

func NewDocument() *Document {
	return &Document{version: DocumentVersion}
}

func (d *Document) Name() string {
	return "stackmark-document"
}

func (d *Document) Version() int32 {
	return d.version
}

// Sections returns the parsed sections.
func (d *Document) Sections() []Section {
	return d.sections
}

// these unexported DTOs must have exported fields and json name tags
// to ensure encoding/json will parse raw data into these structs
type rawSchema struct {
	Version  int32        `json:"version"`
	Sections []rawSection `json:"sections"`
}

type rawSection struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Kind    Kind      `json:"kind"`
	Content []RawItem `json:"content"`
}

// Parse transforms raw json into a Document with raw content items,
// parses them as specific content items, saves the sections internally
// and returns the canonical document as json.
func (d *Document) Parse(body []byte) ([]byte, error) {
	// 1) parse raw json
	var rawParsed rawSchema
	if err := json.Unmarshal(body, &rawParsed); err != nil {
		return nil, fmt.Errorf("invalid document json: %w", err)
	}

	if rawParsed.Version != d.version {
		return nil, fmt.Errorf("unsupported document version: got %d, want %d", rawParsed.Version, d.version)
	}
	if len(rawParsed.Sections) == 0 {
		return nil, errors.New("document.sections must not be empty")
	}

	// 2) parse and validate contents and store into []Section
	parsedContent := make([]Section, len(rawParsed.Sections))
	seen := make(map[string]int, len(rawParsed.Sections))

	for i, sec := range rawParsed.Sections {
		sec.ID = strings.TrimSpace(sec.ID)
		if sec.ID == "" {
			return nil, fmt.Errorf("section[%d]: id is required", i)
		}
		if prev, ok := seen[sec.ID]; ok {
			return nil, fmt.Errorf("section[%d]: id %q is already used by section[%d]", i, sec.ID, prev)
		}
		seen[sec.ID] = i

		if len(sec.Content) == 0 {
			return nil, fmt.Errorf("section[%d]: content must not be empty", i)
		}
		if sec.Kind == "" {
			sec.Kind = KindDefault
		}

		section := Section{
			ID:      sec.ID,
			Title:   sec.Title,
			Kind:    sec.Kind,
			Content: make([]ContentItem, len(sec.Content)),
		}

		for j, rawItem := range sec.Content {
			item, err := parseItem(rawItem)
			if err != nil {
				return nil, fmt.Errorf("section[%d].content[%d]: %w", i, j, err)
			}
			section.Content[j] = item
		}

		parsedContent[i] = section
	}

	d.sections = parsedContent

	canonical := struct {
		Version  int32     `json:"version"`
		Sections []Section `json:"sections"`
	}{
		Version:  d.version,
		Sections: parsedContent,
	}

	out, err := json.Marshal(canonical)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func parseItem(rawItem RawItem) (ContentItem, error) {
	switch rawItem.Type {
	case TypeParagraph:
		return NewParagraph(rawItem.Raw)
	case TypeList:
		return NewList(rawItem.Raw)
	case TypeCode:
		return NewCode(rawItem.Raw)
	case TypeQuote:
		return NewQuote(rawItem.Raw)
	case TypeDivider:
		return NewDivider(rawItem.Raw)
	default:
		return nil, fmt.Errorf("unknown type %q", rawItem.Type)
	}
}

// RenderedSection is a section with its content rendered to HTML.
type RenderedSection struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Kind  Kind   `json:"kind"`
	HTML  string `json:"html"`
}

// RenderedDocument is the HTML form of a parsed Document.
type RenderedDocument struct {
	Version  int32             `json:"version"`
	Sections []RenderedSection `json:"sections"`
}

// Render renders every section of a parsed document. Items of a section
// are separated by a newline.
func (d *Document) Render(parse backend.ParseFunc, opts render.Options) (*RenderedDocument, error) {
	if len(d.sections) == 0 {
		return nil, ErrNotParsed
	}

	out := &RenderedDocument{
		Version:  d.version,
		Sections: make([]RenderedSection, len(d.sections)),
	}

	for i, sec := range d.sections {
		parts := make([]string, len(sec.Content))
		for j, item := range sec.Content {
			html, err := item.HTML(parse, opts)
			if err != nil {
				return nil, fmt.Errorf("section %q item[%d]: %w", sec.ID, j, err)
			}
			parts[j] = html
		}

		out.Sections[i] = RenderedSection{
			ID:    sec.ID,
			Title: sec.Title,
			Kind:  sec.Kind,
			HTML:  strings.Join(parts, "\n"),
		}
	}

	return out, nil
}

// Section defines a separate block of the content.
type Section struct {
	ID      string        `json:"id"`      // Required. Must be unique across all sections.
	Title   string        `json:"title"`   // Optional. Defines the display name of each section.
	Kind    Kind          `json:"kind"`    // Required. Defines the type of the block. "default" by default.
	Content []ContentItem `json:"content"` // Required. Actual body of the block.
}

// RawItem defines not-fully parsed json content item to be later parsed as ContentItem based on the Type field.
type RawItem struct {
	Type Type            `json:"type"`
	Raw  json.RawMessage // the whole JSON object for this item
}

// UnmarshalJSON helps saving all the data in the Raw field
// and still be able to access the content type via Type field
func (ri *RawItem) UnmarshalJSON(data []byte) error {
	// 1) first copy all the data into the Raw field
	ri.Raw = make(json.RawMessage, len(data))
	copy(ri.Raw, data)

	// 2) extract only type and save it in the Type field
	var aux struct {
		Type Type `json:"type"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	ri.Type = aux.Type
	return nil
}
