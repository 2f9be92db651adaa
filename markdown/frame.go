package markdown

import (
	"strings"
	"unicode/utf8"
)

// frame is a single entry of the parser stack: one open, not yet resolved
// construct and everything collected since it was opened.
type frame struct {
	kind Delimiter

	// pos is the index of the character that opened the frame.
	pos int

	// pending accumulates raw characters seen since the frame opened
	// or since its last flush.
	pending []byte

	// completed holds already resolved children: text runs and nested nodes.
	completed []Value
}

func newFrame(kind Delimiter, pos int) *frame {
	return &frame{kind: kind, pos: pos}
}

// isVirgin reports whether nothing was collected since the frame opened.
// This predicate decides every single/double/triple marker question.
func (f *frame) isVirgin() bool {
	return len(f.pending) == 0 && len(f.completed) == 0
}

func (f *frame) pushRune(r rune) {
	f.pending = utf8.AppendRune(f.pending, r)
}

func (f *frame) pushString(s string) {
	f.pending = append(f.pending, s...)
}

// endsWithEscape reports whether the last pending character is a backslash.
func (f *frame) endsWithEscape() bool {
	l := len(f.pending)
	return l > 0 && f.pending[l-1] == SymbolEscape
}

// flush moves pending text into the completed list, so the text stays
// in front of whatever the next frame produces.
func (f *frame) flush() {
	if len(f.pending) == 0 {
		return
	}
	f.completed = appendText(f.completed, string(f.pending))
	f.pending = f.pending[:0]
}

// appendValue adds a resolved value to the completed list. Pending text goes
// first to keep document order.
func (f *frame) appendValue(v Value) {
	f.flush()
	f.completed = appendValue(f.completed, v)
}

func (f *frame) appendValues(vs []Value) {
	f.flush()
	for _, v := range vs {
		f.completed = appendValue(f.completed, v)
	}
}

// toNode builds a node of the given kind from the frame's content:
// completed children followed by the pending text.
func (f *frame) toNode(kind NodeKind) *Node {
	n := NewNode(kind)
	n.AppendValues(f.completed)
	n.AppendText(string(f.pending))
	return n
}

// text returns all of the frame's plain text. Nested nodes contribute
// their plain text.
func (f *frame) text() string {
	var b strings.Builder
	for _, v := range f.completed {
		if v.IsText() {
			b.WriteString(v.Text)
		} else {
			b.WriteString(v.Node.Text())
		}
	}
	b.Write(f.pending)
	return b.String()
}

// values flattens an unresolved frame back to literal text.
//
// A frame without completed children collapses into a single text run:
// literal + pending. Otherwise the literal is kept as a leading text run,
// followed by the completed children and the pending text.
func (f *frame) values() []Value {
	literal := f.kind.Literal()

	if len(f.completed) == 0 {
		s := literal + string(f.pending)
		if s == "" {
			return nil
		}
		return []Value{TextValue(s)}
	}

	values := make([]Value, 0, len(f.completed)+2)
	values = appendText(values, literal)
	for _, v := range f.completed {
		values = appendValue(values, v)
	}
	values = appendText(values, string(f.pending))

	return values
}
