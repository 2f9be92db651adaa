package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_AppendText_MergesAndSkipsEmpty(t *testing.T) {
	n := NewNode(NodeBold)
	n.AppendText("")
	require.Empty(t, n.Children)

	n.AppendText("a")
	n.AppendText("b")
	require.Equal(t, []Value{txt("ab")}, n.Children)

	n.AppendNode(NewNode(NodeLineBreak))
	n.AppendValue(txt(""))
	n.AppendValue(txt("c"))
	n.AppendValues([]Value{txt("d"), txt("e")})

	require.Len(t, n.Children, 3)
	require.Equal(t, "cde", n.Children[2].Text)
}

func TestNode_TextAndLength(t *testing.T) {
	r := Parse("**жирный** *x*\n> q")
	require.Equal(t, "жирный x\nq", r.Text())
	require.Equal(t, 10, r.TextLength())
}

func TestNode_Walk_Order(t *testing.T) {
	r := root(txt("a"), nd(NodeBold, txt("b"), nd(NodeItalics, txt("c"))), txt("d"))

	var events []string
	r.Walk(func(v Value, entering bool) {
		switch {
		case v.IsText():
			events = append(events, v.Text)
		case entering:
			events = append(events, "+"+v.Node.Kind.String())
		default:
			events = append(events, "-"+v.Node.Kind.String())
		}
	})

	require.Equal(t, []string{"a", "+bold", "b", "+italics", "c", "-italics", "-bold", "d"}, events)
}

func TestNodeKind_String(t *testing.T) {
	require.Equal(t, "line_break", NodeLineBreak.String())
	require.Equal(t, "blockquote", NodeBlockQuote.String())
	require.Equal(t, "unknown", NumNodeKinds.String())
	require.Equal(t, "unknown", NodeKind(-1).String())
}

func TestNodeKind_Heading(t *testing.T) {
	for level := 1; level <= 6; level++ {
		kind, ok := HeadingKind(level)
		require.True(t, ok)
		require.Equal(t, level, kind.HeadingLevel())
	}

	_, ok := HeadingKind(0)
	require.False(t, ok)
	_, ok = HeadingKind(7)
	require.False(t, ok)
	require.Zero(t, NodeBold.HeadingLevel())
}
