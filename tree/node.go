package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
)

// NodeID identifies a node within a tree. IDs are assigned in breadth-first
// order when a tree is constructed and do not change afterwards, not even
// when the tree is re-rooted.
type NodeID int

// NoNode is the parent ID of a root node.
const NoNode NodeID = -1

// Node is the base type our tree is built of.
type Node struct {
	ID       NodeID   // stable identifier, unique within a tree
	Name     string   // optional label, e.g. a sample or taxon name
	Distance float64  // branch length to the parent node, 0 if absent
	Data     Data     // per-node attributes, see MergeNodeData
	parent   NodeID   // parent node of this node
	children []NodeID // ordered children nodes
}

func (node *Node) String() string {
	return fmt.Sprintf("(Node #%d %q d=%g #ch=%d)", node.ID, node.Name, node.Distance, len(node.children))
}

// Parent returns the ID of the parent node or NoNode (for the root of the tree).
func (node *Node) Parent() NodeID {
	return node.parent
}

// ChildCount returns the number of children-nodes for a node.
func (node *Node) ChildCount() int {
	return len(node.children)
}

// Children returns the IDs of all children of a node, in order.
// The returned slice is a copy.
func (node *Node) Children() []NodeID {
	children := make([]NodeID, len(node.children))
	copy(children, node.children)
	return children
}

// IsLeaf is true for nodes without children.
func (node *Node) IsLeaf() bool {
	return len(node.children) == 0
}

// IndexOfChild returns the index of a child within the list of children
// of node, or -1 if ch is not a child of node.
func (node *Node) IndexOfChild(ch NodeID) int {
	for i, child := range node.children {
		if child == ch {
			return i
		}
	}
	return -1
}

func (node *Node) addChild(ch *Node) {
	node.children = append(node.children, ch.ID)
	ch.parent = node.ID
}

// removeChildAt deletes the child at position i, preserving the order of
// the remaining children.
func (node *Node) removeChildAt(i int) {
	node.children = append(node.children[:i], node.children[i+1:]...)
}
