package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"

	"github.com/npillmayer/phylo/newick"
)

// ErrNodeNotFound is returned if an operation addresses a node which is not
// part of the tree.
var ErrNodeNotFound = errors.New("node not found in tree")

// ErrNegativeDistance is returned for node data with a negative branch length.
var ErrNegativeDistance = errors.New("negative branch length")

// Tree is a rooted tree of nodes. Nodes are owned by the tree and addressed
// by their NodeID.
type Tree struct {
	nodes []*Node // arena, indexed by NodeID
	root  NodeID
}

// New creates a tree from a parsed Newick tree. Nodes are copied into the
// tree and receive IDs in breadth-first order, starting with 0 for the root.
//
// If data is non-nil, every named node with a matching entry in data is
// patched (see MergeNodeData).
//
// If root is nil, New returns nil.
func New(root *newick.Node, data NodeData) *Tree {
	if root == nil {
		return nil
	}
	t := &Tree{nodes: make([]*Node, 0, root.Len())}
	type pending struct {
		raw    *newick.Node
		parent *Node
	}
	queue := []pending{{raw: root}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		node := &Node{
			ID:     NodeID(len(t.nodes)),
			Name:   p.raw.Name,
			parent: NoNode,
		}
		if p.raw.Length != nil {
			node.Distance = *p.raw.Length
		}
		t.nodes = append(t.nodes, node)
		if p.parent != nil {
			p.parent.addChild(node)
		}
		for _, ch := range p.raw.Children {
			queue = append(queue, pending{raw: ch, parent: node})
		}
	}
	t.root = 0
	tracer().Debugf("new tree with %d nodes", len(t.nodes))
	if data != nil {
		t.MergeNodeData(data)
	}
	return t
}

// FromNewickString parses a Newick string and creates a tree from it,
// merging data into the nodes (see New).
//
// An empty string does not contain a tree. In this case FromNewickString
// returns a nil tree and no error, without invoking the parser.
// Parse errors are returned unchanged.
func FromNewickString(s string, data NodeData) (*Tree, error) {
	if s == "" {
		tracer().Debugf("empty Newick input, no tree")
		return nil, nil
	}
	root, err := newick.Parse(s)
	if err != nil {
		return nil, err
	}
	return New(root, data), nil
}

// Root returns the current root node of the tree.
func (t *Tree) Root() *Node {
	return t.nodes[t.root]
}

// Len returns the number of nodes owned by the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with a given ID, or nil if no such node exists.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// NodesNamed returns all nodes reachable from the root which carry a given
// name, in breadth-first order.
func (t *Tree) NodesNamed(name string) []*Node {
	var named []*Node
	for _, node := range t.BFS() {
		if node.Name == name {
			named = append(named, node)
		}
	}
	return named
}

// BFS returns all nodes reachable from the root in breadth-first order: the
// root first, then the root's children left to right, then their children,
// and so on.
func (t *Tree) BFS() []*Node {
	nodes := make([]*Node, 0, len(t.nodes))
	queue := []*Node{t.Root()}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		nodes = append(nodes, node)
		for _, ch := range node.children {
			queue = append(queue, t.nodes[ch])
		}
	}
	return nodes
}

// Leaves returns all leaf nodes reachable from the root, from left to right.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	var collect func(node *Node)
	collect = func(node *Node) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
			return
		}
		for _, ch := range node.children {
			collect(t.nodes[ch])
		}
	}
	collect(t.Root())
	return leaves
}

// MergeNodeData patches every named node reachable from the root with the
// entry in data matching the node's name. Nodes without a name or without
// a matching entry are left untouched. If more than one node carries a
// name, all of them are patched.
//
// MergeNodeData returns the number of nodes patched.
func (t *Tree) MergeNodeData(data NodeData) int {
	count := 0
	for _, node := range t.BFS() {
		if node.Name == "" {
			continue
		}
		if patch, ok := data[node.Name]; ok {
			patch.ApplyTo(node)
			count++
		}
	}
	tracer().Debugf("merged node data into %d of %d nodes", count, len(t.nodes))
	return count
}

// Ancestors returns the path from the node with ID id up to the node with
// ID from, i.e., [target, parent(target), …, from]. If id is not found in
// the subtree below from, Ancestors returns nil.
//
// The search is depth-first, trying children in order; if id is not unique
// the leftmost match wins.
func (t *Tree) Ancestors(from NodeID, id NodeID) []*Node {
	node := t.Node(from)
	if node == nil {
		return nil
	}
	if node.ID == id {
		return []*Node{node}
	}
	for _, ch := range node.children {
		if path := t.Ancestors(ch, id); path != nil {
			return append(path, node)
		}
	}
	return nil
}

// DetachFromParent removes node from the children of parent. Only the
// first occurrence is removed, the order of the remaining children is
// preserved.
//
// If node is not a child of parent, DetachFromParent does nothing.
func (t *Tree) DetachFromParent(node NodeID, parent NodeID) {
	p := t.Node(parent)
	if p == nil {
		tracer().Debugf("detach: parent #%d is not part of the tree", parent)
		return
	}
	i := p.IndexOfChild(node)
	if i < 0 {
		tracer().Debugf("detach: node #%d is not a child of %v", node, p)
		return
	}
	p.removeChildAt(i)
	if n := t.Node(node); n != nil && n.parent == parent {
		n.parent = NoNode
	}
}

// Reroot makes the node with ID id the new root of the tree. The edges on
// the path from the old root to the new root change direction, and the
// branch lengths along that path are swapped, so every edge keeps its
// weight. Subtrees off the path stay attached to their parents.
//
// If id is not reachable from the current root, Reroot returns an error
// wrapping ErrNodeNotFound and the tree is left unchanged.
func (t *Tree) Reroot(id NodeID) error {
	path := t.Ancestors(t.root, id)
	if path == nil {
		return fmt.Errorf("cannot reroot at node #%d: %w", id, ErrNodeNotFound)
	}
	tracer().Debugf("rerooting at %v, path length %d", path[0], len(path))
	for len(path) > 1 {
		nodeToMove := path[len(path)-1]
		path = path[:len(path)-1]
		previous := path[len(path)-1]
		t.DetachFromParent(previous.ID, nodeToMove.ID)
		nodeToMove.Distance, previous.Distance = previous.Distance, nodeToMove.Distance
		previous.addChild(nodeToMove)
		tracer().Debugf("reroot: %v is now a child of %v", nodeToMove, previous)
	}
	t.root = path[0].ID
	assertThat(t.Root().parent == NoNode, "new root %v still has a parent", t.Root())
	return nil
}

// RerootAt re-roots the tree at the first node (in breadth-first order)
// with a given name. If there is no such node, an error wrapping
// ErrNodeNotFound is returned.
func (t *Tree) RerootAt(name string) error {
	named := t.NodesNamed(name)
	if len(named) == 0 {
		return fmt.Errorf("cannot reroot at %q: %w", name, ErrNodeNotFound)
	}
	if len(named) > 1 {
		tracer().Infof("reroot: name %q is not unique, using %v", name, named[0])
	}
	return t.Reroot(named[0].ID)
}

// Newick converts the tree, in its current orientation, back to a Newick
// node structure. The root's branch length is included only if it is
// non-zero.
func (t *Tree) Newick() *newick.Node {
	var convert func(node *Node, isRoot bool) *newick.Node
	convert = func(node *Node, isRoot bool) *newick.Node {
		raw := &newick.Node{Name: node.Name}
		if !isRoot || node.Distance != 0 {
			d := node.Distance
			raw.Length = &d
		}
		for _, ch := range node.children {
			raw.Children = append(raw.Children, convert(t.nodes[ch], false))
		}
		return raw
	}
	return convert(t.Root(), true)
}

// String returns the tree in Newick format.
func (t *Tree) String() string {
	return t.Newick().String()
}
