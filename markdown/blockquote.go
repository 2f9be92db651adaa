package markdown

// mergeBlockQuotes folds blockquote lines separated by exactly one line break
// into a single blockquote. Each line of a merged blockquote becomes
// a NodeParagraph child, so lines stay distinct.
//
// Example: "> a\n> b" -> BlockQuote(Paragraph("a"), Paragraph("b")).
// A lone blockquote line keeps its children as is.
func mergeBlockQuotes(root *Node) {
	children := root.Children
	merged := make([]Value, 0, len(children))

	for i := 0; i < len(children); i++ {
		v := children[i]
		if !isKind(v, NodeBlockQuote) {
			merged = append(merged, v)
			continue
		}

		// collecting the run: BlockQuote (LineBreak BlockQuote)*
		lines := []*Node{v.Node}
		for i+2 < len(children) && isKind(children[i+1], NodeLineBreak) && isKind(children[i+2], NodeBlockQuote) {
			lines = append(lines, children[i+2].Node)
			i += 2
		}

		if len(lines) == 1 {
			merged = append(merged, v)
			continue
		}

		quote := NewNode(NodeBlockQuote)
		for _, line := range lines {
			paragraph := NewNode(NodeParagraph)
			paragraph.AppendValues(line.Children)
			quote.AppendNode(paragraph)
		}

		merged = append(merged, NodeValue(quote))
	}

	root.Children = merged
}

func isKind(v Value, kind NodeKind) bool {
	return !v.IsText() && v.Node.Kind == kind
}
