package dendro

import (
	"github.com/npillmayer/phylo/tree"
)

// Uncolored is the color group of nodes whose subtree mixes groups.
const Uncolored = "Uncolored"

// AbsentName returns the group name for leaves which lack a value for
// attribute. Leaves without a project are reference sequences.
func AbsentName(attribute string) string {
	if attribute == "project_name" {
		return "NCBI References"
	}
	return "No data"
}

// Coloring assigns every node to a color group.
//
// Values lists the group names, with Uncolored at index 0. Index maps each
// node to a position in Values. If Skip is set, no leaf has a value for the
// attribute and the tree should be drawn in the default color; Index is
// nil in this case.
type Coloring struct {
	Attribute string
	Values    []string
	Index     map[tree.NodeID]int
	Skip      bool
}

// Group returns the group name for a node.
func (c Coloring) Group(id tree.NodeID) string {
	return c.Values[c.Index[id]]
}

// ColorGroups groups the nodes of t by the value of attribute (see
// tree.Data.Attribute). A leaf belongs to the group of its value; an
// inner node belongs to the group of its children if they all agree,
// and to Uncolored otherwise.
func ColorGroups(t *tree.Tree, attribute string) Coloring {
	absent := AbsentName(attribute)
	c := Coloring{Attribute: attribute, Values: []string{Uncolored}}
	position := make(map[string]int)
	for _, leaf := range t.Leaves() {
		v := leafValue(leaf, attribute, absent)
		if _, ok := position[v]; !ok {
			position[v] = len(c.Values)
			c.Values = append(c.Values, v)
		}
	}
	if len(c.Values) == 2 && c.Values[1] == absent {
		tracer().Debugf("no node has a value for %q, skipping colors", attribute)
		c.Skip = true
		return c
	}
	c.Index = make(map[tree.NodeID]int, t.Len())
	var color func(node *tree.Node) int
	color = func(node *tree.Node) int {
		result := 0
		if node.IsLeaf() {
			result = position[leafValue(node, attribute, absent)]
		} else {
			first, uniform := -1, true
			for _, ch := range node.Children() {
				cc := color(t.Node(ch)) // visit every child to color the whole subtree
				if first < 0 {
					first = cc
				} else if cc != first {
					uniform = false
				}
			}
			if uniform {
				result = first
			}
		}
		c.Index[node.ID] = result
		return result
	}
	color(t.Root())
	return c
}

func leafValue(leaf *tree.Node, attribute, absent string) string {
	if v, ok := leaf.Data.Attribute(attribute); ok {
		return v
	}
	return absent
}
