package render

import "github.com/Drolfothesgnir/stackmark/markdown"

const textType = "text"

// SerializableTree is the JSON form of a parsed document.
type SerializableTree struct {
	Tree       SerializableNode `json:"tree"`
	TextLength int              `json:"text_length"`
}

// SerializableNode is a JSON friendly node. Text leaves have Type "text"
// and carry Value, every other node carries Children.
type SerializableNode struct {
	Type     string             `json:"type"`
	Language string             `json:"language,omitempty"`
	Value    string             `json:"value,omitempty"`
	Children []SerializableNode `json:"children,omitempty"`
}

type serializeTask struct {
	parent   *SerializableNode
	childIdx int // index in parent.Children
	value    markdown.Value
}

// Serialize converts the tree below root into SerializableTree.
// The walk uses an explicit stack.
func Serialize(root *markdown.Node) SerializableTree {
	tree := SerializableNode{
		Type:     root.Kind.String(),
		Children: make([]SerializableNode, len(root.Children)),
	}

	stack := make([]serializeTask, 0, len(root.Children))
	for i, v := range root.Children {
		stack = append(stack, serializeTask{parent: &tree, childIdx: i, value: v})
	}

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if task.value.IsText() {
			task.parent.Children[task.childIdx] = SerializableNode{
				Type:  textType,
				Value: task.value.Text,
			}
			continue
		}

		node := task.value.Node
		sn := SerializableNode{
			Type:     node.Kind.String(),
			Language: node.Language,
		}
		if len(node.Children) > 0 {
			sn.Children = make([]SerializableNode, len(node.Children))
		}

		task.parent.Children[task.childIdx] = sn

		placed := &task.parent.Children[task.childIdx]
		for i, v := range node.Children {
			stack = append(stack, serializeTask{parent: placed, childIdx: i, value: v})
		}
	}

	if len(tree.Children) == 0 {
		tree.Children = nil
	}

	return SerializableTree{
		Tree:       tree,
		TextLength: root.TextLength(),
	}
}
