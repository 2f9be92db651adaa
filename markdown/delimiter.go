package markdown

// Delimiter defines the state of a single open construct on the parser stack,
// e.g. a single star waiting for its closing counterpart.
type Delimiter int

const (
	// DelimPlain is a plain run of characters, the bottom frame of every line.
	DelimPlain Delimiter = iota
	DelimLineBreak
	DelimStar
	DelimDoubleStar
	DelimUnderscore
	DelimDoubleUnderscore
	DelimBackslash
	DelimBacktick
	DelimDoubleBacktick
	DelimTripleBacktick
	DelimTilde
	DelimDoubleTilde
	DelimHeading1
	DelimHeading2
	DelimHeading3
	DelimHeading4
	DelimHeading5
	DelimGreaterThan
	DelimBlockQuote

	// NumDelimiters is the total number of delimiters. Should be placed as last const.
	NumDelimiters
)

// Special symbols recognized by the parser.
const (
	SymbolStar       = '*'
	SymbolUnderscore = '_'
	SymbolBacktick   = '`'
	SymbolTilde      = '~'
	SymbolEscape     = '\\'
	SymbolHeading    = '#'
	SymbolQuote      = '>'
	SymbolNewLine    = '\n'
	SymbolSpace      = ' '
)

// delimiterLiteral stores the exact source text every delimiter folds back to
// when its frame is never resolved into a node.
var delimiterLiteral = [NumDelimiters]string{
	DelimPlain:            "",
	DelimLineBreak:        "\n",
	DelimStar:             "*",
	DelimDoubleStar:       "**",
	DelimUnderscore:       "_",
	DelimDoubleUnderscore: "__",
	DelimBackslash:        "\\",
	DelimBacktick:         "`",
	DelimDoubleBacktick:   "``",
	DelimTripleBacktick:   "```",
	DelimTilde:            "~",
	DelimDoubleTilde:      "~~",
	DelimHeading1:         "#",
	DelimHeading2:         "##",
	DelimHeading3:         "###",
	DelimHeading4:         "####",
	DelimHeading5:         "#####",
	DelimGreaterThan:      ">",
	DelimBlockQuote:       "",
}

var delimiterName = [NumDelimiters]string{
	DelimPlain:            "Plain",
	DelimLineBreak:        "LineBreak",
	DelimStar:             "Star",
	DelimDoubleStar:       "DoubleStar",
	DelimUnderscore:       "Underscore",
	DelimDoubleUnderscore: "DoubleUnderscore",
	DelimBackslash:        "Backslash",
	DelimBacktick:         "Backtick",
	DelimDoubleBacktick:   "DoubleBacktick",
	DelimTripleBacktick:   "TripleBacktick",
	DelimTilde:            "Tilde",
	DelimDoubleTilde:      "DoubleTilde",
	DelimHeading1:         "Heading1",
	DelimHeading2:         "Heading2",
	DelimHeading3:         "Heading3",
	DelimHeading4:         "Heading4",
	DelimHeading5:         "Heading5",
	DelimGreaterThan:      "GreaterThan",
	DelimBlockQuote:       "BlockQuote",
}

// Literal returns the canonical source text of the delimiter,
// e.g. "**" for DelimDoubleStar. Plain and BlockQuote have no literal.
func (d Delimiter) Literal() string {
	if d < 0 || d >= NumDelimiters {
		return ""
	}
	return delimiterLiteral[d]
}

// String returns the name of the delimiter, e.g. "DoubleStar".
func (d Delimiter) String() string {
	if d < 0 || d >= NumDelimiters {
		return "Unknown"
	}
	return delimiterName[d]
}

// IsCode reports whether the delimiter belongs to the backtick family.
// Everything inside a code frame is literal except backticks and newlines.
func (d Delimiter) IsCode() bool {
	return d == DelimBacktick || d == DelimDoubleBacktick || d == DelimTripleBacktick
}

// IsHeading reports whether the delimiter is one of the heading levels.
func (d Delimiter) IsHeading() bool {
	return d >= DelimHeading1 && d <= DelimHeading5
}

// headingDelimiter maps a run of 1..5 heading symbols to its delimiter.
func headingDelimiter(hashes int) (Delimiter, bool) {
	if hashes < 1 || hashes > 5 {
		return DelimPlain, false
	}
	return DelimHeading1 + Delimiter(hashes-1), true
}

// headingNodeKind maps a heading delimiter to its node kind.
func headingNodeKind(d Delimiter) NodeKind {
	return NodeHeading1 + NodeKind(d-DelimHeading1)
}
