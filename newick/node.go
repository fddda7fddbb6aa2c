package newick

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Node corresponds to any value representable in a Newick format. Each
// node value corresponds to a single (sub-)tree.
type Node struct {
	// All children of this node, which may be empty.
	Children []*Node

	// The label of this node. If it's empty, then this node does
	// not have a name.
	Name string

	// The branch length of this node corresponding to the distance between
	// it and its parent node. If it's `nil`, then no distance exists.
	Length *float64
}

// Len returns the number of nodes in the tree rooted at node.
func (node *Node) Len() int {
	if node == nil {
		return 0
	}
	n := 1
	for _, ch := range node.Children {
		n += ch.Len()
	}
	return n
}

// String returns the Newick representation of the tree rooted at node,
// terminated by ';'.
func (node *Node) String() string {
	var sb strings.Builder
	_ = Write(&sb, node)
	return strings.TrimSuffix(sb.String(), "\n")
}

// Write writes the tree rooted at node in Newick format to w, terminated
// by ';' and a newline.
func Write(w io.Writer, node *Node) error {
	bw := bufio.NewWriter(w)
	if node != nil {
		writeNode(bw, node)
	}
	bw.WriteString(";\n")
	return bw.Flush()
}

func writeNode(w *bufio.Writer, node *Node) {
	if len(node.Children) > 0 {
		w.WriteByte(descStart)
		for i, ch := range node.Children {
			if i > 0 {
				w.WriteByte(descDelimiter)
			}
			writeNode(w, ch)
		}
		w.WriteByte(descEnd)
	}
	w.WriteString(quoteLabel(node.Name))
	if node.Length != nil {
		w.WriteByte(lengthStart)
		w.WriteString(strconv.FormatFloat(*node.Length, 'g', -1, 64))
	}
}

// quoteLabel wraps a label in single quotes if it contains characters which
// are not allowed in an unquoted label.
func quoteLabel(label string) string {
	if !strings.ContainsAny(label, unquoteBanned+"\t\n\r") {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}
