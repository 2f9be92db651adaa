package render

import (
	"strings"

	"github.com/Drolfothesgnir/stackmark/markdown"
)

var markerByKind = map[markdown.NodeKind]string{
	markdown.NodeBold:          "**",
	markdown.NodeItalics:       "*",
	markdown.NodeStrikethrough: "~~",
}

var textEscaper = strings.NewReplacer(
	"*", "\\*",
	"_", "\\_",
	"`", "\\`",
)

// Markdown writes the tree below root back as canonical markdown:
// "**" for bold, "*" for italics and "> " in front of every quoted line.
// Parsing the output yields the same tree for trees produced by the parser,
// as long as text does not contain "~~" or a backslash in front of
// a special character.
func Markdown(root *markdown.Node) string {
	var b strings.Builder

	// lines counts the paragraphs already written per open blockquote
	var lines []int
	inCode := false

	root.Walk(func(v markdown.Value, entering bool) {
		if v.IsText() {
			if !inCode {
				b.WriteString(textEscaper.Replace(v.Text))
			}
			return
		}

		n := v.Node

		switch n.Kind {
		case markdown.NodeLineBreak:
			if entering {
				b.WriteByte('\n')
			}

		case markdown.NodeCode:
			if !entering {
				inCode = false
				return
			}
			inCode = true
			writeCodeMarkdown(&b, n)

		case markdown.NodeBlockQuote:
			if !entering {
				lines = lines[:len(lines)-1]
				return
			}
			lines = append(lines, 0)

			if len(n.Children) == 0 || n.Children[0].IsText() || n.Children[0].Node.Kind != markdown.NodeParagraph {
				b.WriteString("> ")
			}

		case markdown.NodeParagraph:
			if !entering || len(lines) == 0 {
				return
			}
			if lines[len(lines)-1] > 0 {
				b.WriteByte('\n')
			}
			lines[len(lines)-1]++
			b.WriteString("> ")

		default:
			if level := n.Kind.HeadingLevel(); level > 0 {
				if entering {
					b.WriteString(strings.Repeat("#", level) + " ")
				}
				return
			}

			if marker, ok := markerByKind[n.Kind]; ok {
				b.WriteString(marker)
			}
		}
	})

	return b.String()
}

func writeCodeMarkdown(b *strings.Builder, n *markdown.Node) {
	body := n.Text()

	if n.Language == "" || n.Language == markdown.LanguageText {
		if strings.ContainsRune(body, '\n') {
			b.WriteString("```\n" + body + "```")
			return
		}
		b.WriteString("`" + body + "`")
		return
	}

	b.WriteString("```" + n.Language + "\n" + body + "```")
}
