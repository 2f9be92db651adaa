// Package backend selects the parser that turns input into a markdown tree.
package backend

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Drolfothesgnir/stackmark/commonmark"
	"github.com/Drolfothesgnir/stackmark/markdown"
)

const (
	// Stack is the delimiter stack parser of package markdown.
	Stack = "stack"

	// CommonMark is the goldmark based parser of package commonmark.
	CommonMark = "commonmark"
)

var ErrUnknownBackend = errors.New("unknown parser backend")

// ParseFunc parses input into a tree with a NodeRoot root.
type ParseFunc func(input string) (*markdown.Node, error)

var backends = map[string]ParseFunc{
	Stack: func(input string) (*markdown.Node, error) {
		return markdown.Parse(input), nil
	},
	CommonMark: commonmark.Parse,
}

// Names returns the names of all backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Valid reports whether name is a known backend.
func Valid(name string) bool {
	_, ok := backends[name]
	return ok
}

// Get returns the parse function of the named backend.
func Get(name string) (ParseFunc, error) {
	parse, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return parse, nil
}

// Parse parses input with the named backend.
func Parse(name, input string) (*markdown.Node, error) {
	parse, err := Get(name)
	if err != nil {
		return nil, err
	}
	return parse(input)
}

// ParseWithWarnings parses input with the named backend and also returns
// the problems found in the input. Only the stack backend reports them.
func ParseWithWarnings(name, input string) (*markdown.Node, []markdown.Warning, error) {
	if name == Stack {
		root, warnings := markdown.ParseWithWarnings(input)
		return root, warnings, nil
	}

	root, err := Parse(name, input)
	return root, nil, err
}
