// Package render turns a parsed markdown tree into HTML, JSON friendly
// structures and canonical markdown.
package render

import (
	"strings"

	"github.com/Drolfothesgnir/stackmark/emoji"
	"github.com/Drolfothesgnir/stackmark/markdown"
	"github.com/yuin/goldmark/util"
)

// Options control the HTML output.
type Options struct {
	// Emoji replaces emoticons in text (never inside code) with emoji.
	Emoji bool

	// HardBreaks renders line breaks as "<br>" instead of "\n".
	HardBreaks bool
}

var tagByKind = map[markdown.NodeKind]string{
	markdown.NodeBold:          "strong",
	markdown.NodeItalics:       "em",
	markdown.NodeStrikethrough: "s",
	markdown.NodeHeading1:      "h1",
	markdown.NodeHeading2:      "h2",
	markdown.NodeHeading3:      "h3",
	markdown.NodeHeading4:      "h4",
	markdown.NodeHeading5:      "h5",
	markdown.NodeHeading6:      "h6",
}

// HTML renders the tree below root.
//
// Code bodies are trimmed and placed into
// <pre><code class="language-x">, which is what prism.js expects.
// Every blockquote line is rendered as a <p> inside the <blockquote>.
func HTML(root *markdown.Node, opts Options) string {
	var b strings.Builder

	// wrapped tracks, per open blockquote, whether its content was
	// wrapped into a single <p> because it holds no paragraphs.
	var wrapped []bool
	inCode := false

	root.Walk(func(v markdown.Value, entering bool) {
		if v.IsText() {
			if inCode {
				return
			}
			writeText(&b, v.Text, opts)
			return
		}

		n := v.Node

		switch n.Kind {
		case markdown.NodeLineBreak:
			if !entering {
				return
			}
			if opts.HardBreaks {
				b.WriteString("<br>")
			} else {
				b.WriteByte('\n')
			}

		case markdown.NodeCode:
			if !entering {
				inCode = false
				return
			}
			inCode = true
			writeCode(&b, n)

		case markdown.NodeBlockQuote:
			if entering {
				wrap := len(n.Children) == 0 || n.Children[0].IsText() || n.Children[0].Node.Kind != markdown.NodeParagraph
				wrapped = append(wrapped, wrap)

				b.WriteString("<blockquote>\n")
				if wrap {
					b.WriteString("<p>")
				}
				return
			}

			wrap := wrapped[len(wrapped)-1]
			wrapped = wrapped[:len(wrapped)-1]
			if wrap {
				b.WriteString("</p>\n")
			}
			b.WriteString("</blockquote>")

		case markdown.NodeParagraph:
			if entering {
				b.WriteString("<p>")
			} else {
				b.WriteString("</p>\n")
			}

		default:
			tag, ok := tagByKind[n.Kind]
			if !ok {
				return
			}
			if entering {
				b.WriteString("<" + tag + ">")
			} else {
				b.WriteString("</" + tag + ">")
			}
		}
	})

	return b.String()
}

func writeText(b *strings.Builder, text string, opts Options) {
	if opts.Emoji {
		text = emoji.Substitute(text)
	}
	b.Write(util.EscapeHTML([]byte(text)))
}

func writeCode(b *strings.Builder, n *markdown.Node) {
	language := n.Language
	if language == "" {
		language = markdown.LanguageText
	}

	b.WriteString(`<pre><code class="language-`)
	b.Write(util.EscapeHTML([]byte(language)))
	b.WriteString(`">`)
	b.Write(util.EscapeHTML([]byte(strings.TrimSpace(n.Text()))))
	b.WriteString("</code></pre>")
}
