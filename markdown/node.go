package markdown

import (
	"strings"
	"unicode/utf8"
)

// NodeKind identifies the kind of node in the output tree,
// e.g. Bold, Italics, Code, etc.
type NodeKind int

const (
	// NodeRoot is the single root of the tree created for every parse.
	NodeRoot NodeKind = iota
	NodeLineBreak
	NodeBold
	NodeItalics
	NodeStrikethrough
	NodeHeading1
	NodeHeading2
	NodeHeading3
	NodeHeading4
	NodeHeading5
	NodeHeading6
	NodeBlockQuote
	NodeCode

	// NodeParagraph wraps a single source line inside a merged blockquote.
	NodeParagraph

	// NumNodeKinds is the total number of node kinds. Should be placed as last const.
	NumNodeKinds
)

var nodeKindToString = [NumNodeKinds]string{
	NodeRoot:          "root",
	NodeLineBreak:     "line_break",
	NodeBold:          "bold",
	NodeItalics:       "italics",
	NodeStrikethrough: "strikethrough",
	NodeHeading1:      "heading1",
	NodeHeading2:      "heading2",
	NodeHeading3:      "heading3",
	NodeHeading4:      "heading4",
	NodeHeading5:      "heading5",
	NodeHeading6:      "heading6",
	NodeBlockQuote:    "blockquote",
	NodeCode:          "code",
	NodeParagraph:     "paragraph",
}

// String returns the lowercase name of the kind, e.g. "bold".
func (k NodeKind) String() string {
	if k < 0 || k >= NumNodeKinds {
		return "unknown"
	}
	return nodeKindToString[k]
}

// HeadingLevel returns the level (1..6) of a heading kind, or 0 for any other kind.
func (k NodeKind) HeadingLevel() int {
	if k >= NodeHeading1 && k <= NodeHeading6 {
		return int(k-NodeHeading1) + 1
	}
	return 0
}

// HeadingKind returns the heading kind for a level in range 1..6.
// ok is false for out of range levels.
func HeadingKind(level int) (kind NodeKind, ok bool) {
	if level < 1 || level > 6 {
		return NodeRoot, false
	}
	return NodeHeading1 + NodeKind(level-1), true
}

// Value is a single child of a Node: either a run of plain text
// or a nested node. Exactly one of the fields is set.
type Value struct {
	Text string
	Node *Node
}

// IsText reports whether the value holds plain text.
func (v Value) IsText() bool {
	return v.Node == nil
}

// TextValue creates a Value holding plain text.
func TextValue(s string) Value {
	return Value{Text: s}
}

// NodeValue creates a Value holding a nested node.
func NodeValue(n *Node) Value {
	return Value{Node: n}
}

// Node is an element of the output tree.
//
// Children never contain empty text values or two text values in a row:
// AppendText and AppendValue coalesce them on insertion.
type Node struct {
	Kind NodeKind

	// Language is the code language of NodeCode nodes, e.g. "rust" or "text".
	// It is empty for every other kind.
	Language string

	Children []Value
}

// NewNode creates a node of the given kind without children.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewCodeNode creates a NodeCode node with the given language and body.
func NewCodeNode(language, body string) *Node {
	n := &Node{Kind: NodeCode, Language: language}
	n.AppendText(body)
	return n
}

// AppendText appends a run of text, merging it into the last child
// if that child is text as well. Empty strings are ignored.
func (n *Node) AppendText(s string) {
	n.Children = appendText(n.Children, s)
}

// AppendNode appends a nested node.
func (n *Node) AppendNode(child *Node) {
	n.Children = append(n.Children, NodeValue(child))
}

// AppendValue appends any value, applying the text merge rule.
func (n *Node) AppendValue(v Value) {
	n.Children = appendValue(n.Children, v)
}

// AppendValues appends values in order, applying the text merge rule.
func (n *Node) AppendValues(vs []Value) {
	for _, v := range vs {
		n.Children = appendValue(n.Children, v)
	}
}

// Text returns the concatenated plain text of the node's subtree,
// without any markup. Line breaks are returned as "\n".
func (n *Node) Text() string {
	var b strings.Builder
	n.Walk(func(v Value, _ bool) {
		if v.IsText() {
			b.WriteString(v.Text)
		} else if v.Node.Kind == NodeLineBreak {
			b.WriteByte('\n')
		}
	})
	return b.String()
}

// TextLength returns the letter (not byte!) count of the node's plain text.
func (n *Node) TextLength() int {
	return utf8.RuneCountInString(n.Text())
}

// Walk visits every value of the subtree below n in document order.
// fn is called for text values and for nodes on entering (entering == true)
// and on leaving (entering == false). Text values are always reported with
// entering set to true.
//
// The walk uses an explicit stack, so arbitrarily deep trees are fine.
func (n *Node) Walk(fn func(v Value, entering bool)) {
	type task struct {
		node *Node
		idx  int
	}

	stack := []task{{node: n}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.idx >= len(top.node.Children) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				fn(NodeValue(top.node), false)
			}
			continue
		}

		child := top.node.Children[top.idx]
		top.idx++

		if child.IsText() {
			fn(child, true)
			continue
		}

		fn(child, true)
		stack = append(stack, task{node: child.Node})
	}
}

// appendText appends s to values, merging with a trailing text value.
func appendText(values []Value, s string) []Value {
	if s == "" {
		return values
	}

	if l := len(values); l > 0 && values[l-1].IsText() {
		values[l-1].Text += s
		return values
	}

	return append(values, TextValue(s))
}

// appendValue appends v to values applying the text merge rule.
func appendValue(values []Value, v Value) []Value {
	if v.IsText() {
		return appendText(values, v.Text)
	}
	return append(values, v)
}
