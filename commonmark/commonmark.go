// Package commonmark is an alternative parser backend. It parses input with
// goldmark (CommonMark plus GFM strikethrough) and reshapes the goldmark AST
// into the same node tree the stack parser produces.
//
// Constructs without a counterpart in the node tree (links, images, lists,
// raw HTML) are kept as their plain text.
package commonmark

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Drolfothesgnir/stackmark/markdown"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// Parse parses input as CommonMark and returns the root Node.
func Parse(input string) (*markdown.Node, error) {
	source := []byte(input)
	doc := md.Parser().Parse(text.NewReader(source))

	c := &converter{
		source: source,
		stack:  []*markdown.Node{markdown.NewNode(markdown.NodeRoot)},
	}

	if err := gmast.Walk(doc, c.visit); err != nil {
		return nil, fmt.Errorf("failed to convert commonmark document: %w", err)
	}

	return c.stack[0], nil
}

type converter struct {
	source []byte

	// stack holds the open nodes, the root is always at the bottom.
	stack []*markdown.Node

	// opened holds the goldmark nodes that pushed onto stack, so they
	// can pop on leaving.
	opened []gmast.Node
}

func (c *converter) visit(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		if l := len(c.opened); l > 0 && c.opened[l-1] == n {
			c.opened = c.opened[:l-1]
			c.stack = c.stack[:len(c.stack)-1]
		}
		return gmast.WalkContinue, nil
	}

	switch node := n.(type) {
	case *gmast.Paragraph, *gmast.TextBlock:
		if parent := n.Parent(); parent != nil && parent.Kind() == gmast.KindBlockquote {
			c.open(n, markdown.NewNode(markdown.NodeParagraph))
			return gmast.WalkContinue, nil
		}
		c.newLine()

	case *gmast.Heading:
		c.newLine()
		kind, ok := markdown.HeadingKind(node.Level)
		if !ok {
			kind = markdown.NodeHeading6
		}
		c.open(n, markdown.NewNode(kind))

	case *gmast.Blockquote:
		c.newLine()
		c.open(n, markdown.NewNode(markdown.NodeBlockQuote))

	case *gmast.FencedCodeBlock:
		c.newLine()
		language := string(node.Language(c.source))
		if language == "" {
			language = markdown.LanguageText
		}
		c.top().AppendNode(markdown.NewCodeNode(language, c.lines(node)))
		return gmast.WalkSkipChildren, nil

	case *gmast.CodeBlock:
		c.newLine()
		c.top().AppendNode(markdown.NewCodeNode(markdown.LanguageText, c.lines(node)))
		return gmast.WalkSkipChildren, nil

	case *gmast.HTMLBlock:
		c.newLine()
		c.top().AppendText(strings.TrimRight(c.lines(node), "\n"))
		return gmast.WalkSkipChildren, nil

	case *gmast.ThematicBreak:
		c.newLine()

	case *gmast.Emphasis:
		kind := markdown.NodeItalics
		if node.Level >= 2 {
			kind = markdown.NodeBold
		}
		c.open(n, markdown.NewNode(kind))

	case *extast.Strikethrough:
		c.open(n, markdown.NewNode(markdown.NodeStrikethrough))

	case *gmast.CodeSpan:
		c.top().AppendNode(markdown.NewCodeNode(markdown.LanguageText, c.inlineText(node)))
		return gmast.WalkSkipChildren, nil

	case *gmast.Text:
		c.top().AppendText(string(node.Segment.Value(c.source)))
		if node.SoftLineBreak() || node.HardLineBreak() {
			c.top().AppendNode(markdown.NewNode(markdown.NodeLineBreak))
		}

	case *gmast.String:
		c.top().AppendText(string(node.Value))

	case *gmast.AutoLink:
		c.top().AppendText(string(node.URL(c.source)))
		return gmast.WalkSkipChildren, nil

	case *gmast.RawHTML:
		for i := 0; i < node.Segments.Len(); i++ {
			segment := node.Segments.At(i)
			c.top().AppendText(string(segment.Value(c.source)))
		}
		return gmast.WalkSkipChildren, nil
	}

	return gmast.WalkContinue, nil
}

// open pushes nd onto the stack after appending it to the current top.
func (c *converter) open(n gmast.Node, nd *markdown.Node) {
	c.top().AppendNode(nd)
	c.stack = append(c.stack, nd)
	c.opened = append(c.opened, n)
}

func (c *converter) top() *markdown.Node {
	return c.stack[len(c.stack)-1]
}

// newLine separates top level blocks with a line break.
func (c *converter) newLine() {
	top := c.top()
	if top.Kind == markdown.NodeRoot && len(top.Children) > 0 {
		top.AppendNode(markdown.NewNode(markdown.NodeLineBreak))
	}
}

func (c *converter) lines(n gmast.Node) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(c.source))
	}
	return b.String()
}

func (c *converter) inlineText(n gmast.Node) string {
	var b bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(c.source))
		case *gmast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}
