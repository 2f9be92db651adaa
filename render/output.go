package render

import (
	"errors"
	"fmt"

	"github.com/Drolfothesgnir/stackmark/markdown"
)

const (
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ValidFormat reports whether format is one of the supported output formats.
func ValidFormat(format string) bool {
	switch format {
	case FormatHTML, FormatJSON, FormatMarkdown:
		return true
	}
	return false
}

// Result is a rendered tree. Text holds html or markdown output,
// Tree holds the JSON form.
type Result struct {
	Format string
	Text   string
	Tree   *SerializableTree
}

// Output renders root in the given format.
func Output(root *markdown.Node, format string, opts Options) (Result, error) {
	switch format {
	case FormatHTML:
		return Result{Format: format, Text: HTML(root, opts)}, nil
	case FormatMarkdown:
		return Result{Format: format, Text: Markdown(root)}, nil
	case FormatJSON:
		tree := Serialize(root)
		return Result{Format: format, Tree: &tree}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
