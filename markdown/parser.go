package markdown

import "fmt"

// Parser converts inline markdown into a tree of Nodes, one character at a time.
//
// The parser keeps a stack of open frames. Every special character either
// opens a new frame, changes the top frame in place, or closes the top frame(s)
// and bubbles the resulting Node into the frame below. Frames left open at the
// end of a line or of the input are drained back into literal text, so the
// parser never fails: malformed markdown simply stays text.
//
// A Parser handles a single input and must not be used concurrently.
type Parser struct {
	// root receives everything drained from the stack.
	root *Node

	// stack holds the open frames, innermost last. It is seeded lazily
	// with a Plain frame on the first character of every line.
	stack []*frame

	// pos is the index of the character being processed.
	pos int

	warnings Warnings

	finished bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithWarnings makes the Parser record problems found in the input into w.
// Without it no Warnings are recorded.
func WithWarnings(w Warnings) Option {
	return func(p *Parser) {
		p.warnings = w
	}
}

// NewParser creates a Parser ready to accept the first character.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		root:  NewNode(NodeRoot),
		stack: make([]*frame, 0, 8),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse runs a new Parser over the whole input and returns the root Node.
func Parse(input string) *Node {
	p := NewParser()
	for _, r := range input {
		p.Process(r)
	}
	return p.Finish()
}

// ParseWithWarnings is like Parse, but also reports up to DefaultMaxWarnings
// problems found in the input, in the order of their position.
func ParseWithWarnings(input string) (*Node, []Warning) {
	w, _ := NewWarnings(WarnOverflowTrunc, DefaultMaxWarnings)

	p := NewParser(WithWarnings(w))
	for _, r := range input {
		p.Process(r)
	}
	root := p.Finish()

	return root, p.Warnings().List()
}

// Warnings returns the Warnings recorded so far.
func (p *Parser) Warnings() *Warnings {
	return &p.warnings
}

// Process consumes a single character.
//
// Process panics if called after Finish.
func (p *Parser) Process(r rune) {
	if p.finished {
		panic("markdown: Process called after Finish")
	}

	p.process(r)
	p.pos++
}

func (p *Parser) process(r rune) {
	if len(p.stack) == 0 {
		p.stack = append(p.stack, newFrame(DelimPlain, p.pos))
	}

	top := p.top()

	// 1) the escape frame always consumes the very next character
	if top.kind == DelimBackslash {
		p.processEscaped(r)
		return
	}

	// 2) a started closing fence followed by anything but a backtick was
	// just content of the code block
	if r != SymbolBacktick && p.isClosingFence() {
		p.pop()
		fence := p.top()
		fence.pushString(top.kind.Literal())
		fence.pushRune(r)
		return
	}

	// 3) newline closes the line, unless we are inside a fenced block
	if r == SymbolNewLine {
		if top.kind == DelimTripleBacktick {
			top.pushRune(r)
			return
		}

		p.drain()
		p.root.AppendNode(NewNode(NodeLineBreak))
		return
	}

	// 4) everything inside code is literal except backticks
	if top.kind.IsCode() {
		p.processCode(top, r)
		return
	}

	// 5) a ">" at the start of a line becomes a blockquote only if a space follows
	if top.kind == DelimGreaterThan {
		if r == SymbolSpace {
			top.kind = DelimBlockQuote
			return
		}

		top.kind = DelimPlain
		top.pushString(DelimGreaterThan.Literal())
	}

	switch r {
	case SymbolStar:
		p.processEmphasis(top, DelimStar, DelimDoubleStar, r)

	case SymbolUnderscore:
		p.processEmphasis(top, DelimUnderscore, DelimDoubleUnderscore, r)

	case SymbolTilde:
		p.processTilde(top)

	case SymbolBacktick:
		p.push(DelimBacktick)

	case SymbolEscape:
		p.push(DelimBackslash)

	case SymbolQuote:
		if p.atLineStart() {
			top.kind = DelimGreaterThan
			return
		}
		top.pushRune(r)

	case SymbolSpace:
		if p.tryHeading() {
			return
		}
		top.pushRune(r)

	default:
		top.pushRune(r)
	}
}

// Finish drains all open frames into the root, merges consecutive blockquote
// lines and returns the root Node.
//
// Calling Finish again returns the same root.
func (p *Parser) Finish() *Node {
	if p.finished {
		return p.root
	}

	p.drain()
	mergeBlockQuotes(p.root)
	p.finished = true

	return p.root
}

// processEscaped handles the character right after a backslash.
// Special characters are taken literally, the backslash is dropped.
// Any other character keeps the backslash in front of it.
func (p *Parser) processEscaped(r rune) {
	escape := p.pop()
	parent := p.mustTop()

	switch r {
	case SymbolStar, SymbolUnderscore, SymbolBacktick:
		parent.pushRune(r)

	case SymbolNewLine:
		// a trailing backslash never escapes the line end
		p.warn(IssueRedundantEscape, escape.pos, "backslash at the end of the line is kept as text")
		parent.pushRune(SymbolEscape)
		p.process(r)

	default:
		p.warn(IssueRedundantEscape, escape.pos, fmt.Sprintf("%q needs no escaping, backslash is kept as text", r))
		parent.pushRune(SymbolEscape)
		parent.pushRune(r)
	}
}

// processCode handles a character while the top frame is one of the backtick family.
func (p *Parser) processCode(top *frame, r rune) {
	if r != SymbolBacktick {
		top.pushRune(r)
		return
	}

	switch top.kind {
	case DelimBacktick:
		// 1) "``" - widen the marker
		if top.isVirgin() {
			top.kind = DelimDoubleBacktick
			return
		}

		// 2) "\`" inside code stays as is
		if top.endsWithEscape() {
			top.pushRune(r)
			return
		}

		// 3) "`code`"
		p.pop()
		p.bubble(NewCodeNode(LanguageText, top.text()))

	case DelimDoubleBacktick:
		if top.isVirgin() {
			// 1) the third backtick of a closing fence
			if p.belowIs(DelimTripleBacktick) {
				p.pop()
				fence := p.pop()
				language, body := SplitLanguage(fence.text())
				p.bubble(NewCodeNode(language, body))
				return
			}

			// 2) "```" opens a fence
			top.kind = DelimTripleBacktick
			return
		}

		if top.endsWithEscape() {
			top.pushRune(r)
			return
		}

		// 3) "``code`" - one backtick is literal, the rest is inline code
		p.pop()
		p.mustTop().pushRune(SymbolBacktick)
		p.bubble(NewCodeNode(LanguageText, top.text()))

	case DelimTripleBacktick:
		// 1) "````" - every extra opening backtick is literal
		if top.isVirgin() {
			p.pop()
			p.mustTop().pushRune(SymbolBacktick)
			p.push(DelimTripleBacktick)
			p.top().pos = top.pos + 1
			return
		}

		if top.endsWithEscape() {
			top.pushRune(r)
			return
		}

		// 2) closing fence begins
		p.push(DelimBacktick)
	}
}

// processEmphasis handles "*" and "_". single and double are the delimiters
// for one and two symbols, sym is the symbol itself.
func (p *Parser) processEmphasis(top *frame, single, double Delimiter, sym rune) {
	switch top.kind {
	case single:
		p.pop()

		// 1) "*x*" - non-virgin single marker closes as italics
		if !top.isVirgin() {
			p.bubble(top.toNode(NodeItalics))
			return
		}

		// 2) "**x**" - second marker of a closing pair
		if p.topIs(double) {
			outer := p.pop()
			p.bubble(outer.toNode(NodeBold))
			return
		}

		// 3) "**" - opening pair
		p.push(double)
		p.top().pos = top.pos

	case double:
		// "***" means nothing: the first symbol is literal and the pair stays open
		if top.isVirgin() {
			p.pop()
			p.mustTop().pushRune(sym)
			p.push(double)
			p.top().pos = top.pos + 1
			return
		}

		p.push(single)

	default:
		p.push(single)
	}
}

// processTilde handles "~". Only the doubled tilde has a meaning.
func (p *Parser) processTilde(top *frame) {
	if top.kind != DelimTilde {
		p.push(DelimTilde)
		return
	}

	if top.isVirgin() {
		// closing "~~"
		if p.belowIs(DelimDoubleTilde) {
			p.pop()
			outer := p.pop()
			p.bubble(outer.toNode(NodeStrikethrough))
			return
		}

		// opening "~~"
		top.kind = DelimDoubleTilde
		return
	}

	// "~x~" - single tilde is plain text
	p.pop()
	p.mustTop().appendValues(top.values())
	p.push(DelimTilde)
}

// tryHeading turns the line's bottom frame into a heading when it holds
// nothing but 1..5 "#" and a space arrives.
func (p *Parser) tryHeading() bool {
	if len(p.stack) != 1 {
		return false
	}

	f := p.stack[0]
	if f.kind != DelimPlain || len(f.completed) > 0 || len(f.pending) == 0 {
		return false
	}

	for _, b := range f.pending {
		if b != SymbolHeading {
			return false
		}
	}

	kind, ok := headingDelimiter(len(f.pending))
	if !ok {
		return false
	}

	f.kind = kind
	f.pending = f.pending[:0]

	return true
}

// atLineStart reports whether nothing was seen on the current line yet.
func (p *Parser) atLineStart() bool {
	return len(p.stack) == 1 && p.stack[0].kind == DelimPlain && p.stack[0].isVirgin()
}

// isClosingFence reports whether the top frame is a partial closing fence,
// i.e. one or two backticks opened inside a fenced block.
func (p *Parser) isClosingFence() bool {
	top := p.top()
	if top == nil || (top.kind != DelimBacktick && top.kind != DelimDoubleBacktick) {
		return false
	}
	return p.belowIs(DelimTripleBacktick)
}

// drain flattens every open frame into its parent, innermost first,
// and finally into the root. Headings and blockquotes become nodes,
// everything else folds back to literal text.
func (p *Parser) drain() {
	p.warnUnclosed()

	for len(p.stack) > 0 {
		f := p.pop()

		var values []Value

		switch {
		case f.kind.IsHeading():
			values = []Value{NodeValue(f.toNode(headingNodeKind(f.kind)))}
		case f.kind == DelimBlockQuote:
			values = []Value{NodeValue(f.toNode(NodeBlockQuote))}
		default:
			values = f.values()
		}

		if top := p.top(); top != nil {
			top.appendValues(values)
		} else {
			p.root.AppendValues(values)
		}
	}
}

// warnUnclosed records a Warning for every open frame that is about
// to fold back into text, outermost first.
func (p *Parser) warnUnclosed() {
	for i, f := range p.stack {
		switch f.kind {
		case DelimBackslash:
			p.warn(IssueRedundantEscape, f.pos, "backslash at the end of the input is kept as text")

		case DelimBacktick, DelimDoubleBacktick:
			// a partial closing fence is reported with its fence
			if i > 0 && p.stack[i-1].kind == DelimTripleBacktick {
				continue
			}
			p.warnUnclosedFrame(f)

		case DelimStar, DelimDoubleStar, DelimUnderscore, DelimDoubleUnderscore,
			DelimDoubleTilde, DelimTripleBacktick:
			p.warnUnclosedFrame(f)
		}
	}
}

func (p *Parser) warnUnclosedFrame(f *frame) {
	p.warn(IssueUnclosedDelimiter, f.pos, fmt.Sprintf("%q is never closed and is kept as text", f.kind.Literal()))
}

func (p *Parser) warn(issue Issue, pos int, description string) {
	p.warnings.Add(Warning{Issue: issue, Pos: pos, Description: description})
}

// bubble appends a resolved node to the top frame, or to the root
// if the stack is empty.
func (p *Parser) bubble(n *Node) {
	if top := p.top(); top != nil {
		top.appendValue(NodeValue(n))
		return
	}
	p.root.AppendNode(n)
}

// push opens a new frame. Pending text of the current top is flushed first,
// so it stays in front of the new construct.
func (p *Parser) push(kind Delimiter) {
	if top := p.top(); top != nil {
		top.flush()
	}
	p.stack = append(p.stack, newFrame(kind, p.pos))
}

func (p *Parser) pop() *frame {
	l := len(p.stack)
	if l == 0 {
		panic("markdown: pop from an empty parser stack")
	}

	f := p.stack[l-1]
	p.stack[l-1] = nil
	p.stack = p.stack[:l-1]

	return f
}

func (p *Parser) top() *frame {
	if l := len(p.stack); l > 0 {
		return p.stack[l-1]
	}
	return nil
}

// mustTop returns the top frame and panics if there is none. Every line
// keeps its bottom frame until it is drained, so an empty stack here is a bug.
func (p *Parser) mustTop() *frame {
	top := p.top()
	if top == nil {
		panic("markdown: parser stack is unexpectedly empty")
	}
	return top
}

func (p *Parser) topIs(kind Delimiter) bool {
	top := p.top()
	return top != nil && top.kind == kind
}

// belowIs reports whether the frame right under the top has the given kind.
func (p *Parser) belowIs(kind Delimiter) bool {
	l := len(p.stack)
	return l >= 2 && p.stack[l-2].kind == kind
}
