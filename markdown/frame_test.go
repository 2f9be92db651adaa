package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrame_Virgin(t *testing.T) {
	f := newFrame(DelimStar, 0)
	require.True(t, f.isVirgin())

	f.pushRune('a')
	require.False(t, f.isVirgin())

	f = newFrame(DelimStar, 0)
	f.appendValue(NodeValue(NewNode(NodeBold)))
	require.False(t, f.isVirgin())
}

func TestFrame_EndsWithEscape(t *testing.T) {
	f := newFrame(DelimBacktick, 0)
	require.False(t, f.endsWithEscape())

	f.pushString("a\\")
	require.True(t, f.endsWithEscape())

	f.pushRune('b')
	require.False(t, f.endsWithEscape())
}

func TestFrame_Values_OnlyPending(t *testing.T) {
	f := newFrame(DelimDoubleStar, 0)
	f.pushString("bold")
	require.Equal(t, []Value{txt("**bold")}, f.values())
}

func TestFrame_Values_EmptyPlain(t *testing.T) {
	require.Nil(t, newFrame(DelimPlain, 0).values())
}

func TestFrame_Values_LiteralBeforeCompleted(t *testing.T) {
	f := newFrame(DelimTilde, 0)
	f.pushString("a ")
	f.appendValue(nd(NodeItalics, txt("b")))
	f.pushString(" c")

	want := []Value{txt("~a "), nd(NodeItalics, txt("b")), txt(" c")}
	require.Equal(t, want, f.values())
}

func TestFrame_ToNode(t *testing.T) {
	f := newFrame(DelimDoubleStar, 0)
	f.pushString("a")
	f.appendValue(nd(NodeItalics, txt("b")))
	f.pushString("c")

	want := nd(NodeBold, txt("a"), nd(NodeItalics, txt("b")), txt("c")).Node
	require.Equal(t, want, f.toNode(NodeBold))
}

func TestFrame_Text(t *testing.T) {
	f := newFrame(DelimTripleBacktick, 0)
	f.pushString("go\n")
	f.appendValue(nd(NodeBold, txt("x")))
	f.pushString("y")
	require.Equal(t, "go\nxy", f.text())
}

func TestDelimiter_Literal(t *testing.T) {
	require.Equal(t, "", DelimPlain.Literal())
	require.Equal(t, "**", DelimDoubleStar.Literal())
	require.Equal(t, "```", DelimTripleBacktick.Literal())
	require.Equal(t, "###", DelimHeading3.Literal())
	require.Equal(t, ">", DelimGreaterThan.Literal())
	require.True(t, DelimDoubleBacktick.IsCode())
	require.False(t, DelimTilde.IsCode())
	require.True(t, DelimHeading5.IsHeading())
}
