package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/phylo/newick"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTree(t *testing.T, s string, data NodeData) *Tree {
	t.Helper()
	tree, err := FromNewickString(s, data)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func nodeNames(nodes []*Node) []string {
	n := make([]string, len(nodes))
	for i, node := range nodes {
		n[i] = node.Name
	}
	return n
}

func named(t *testing.T, tree *Tree, name string) *Node {
	t.Helper()
	nodes := tree.NodesNamed(name)
	require.Len(t, nodes, 1, "expected exactly one node named %q", name)
	return nodes[0]
}

func TestTreeConstruction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()
	//
	tree := mustTree(t, "(B:2,(D:1,E:1.5)C:3)A;", nil)
	assert.Equal(t, 5, tree.Len())
	assert.Equal(t, "A", tree.Root().Name)
	assert.Equal(t, NoNode, tree.Root().Parent())
	c := named(t, tree, "C")
	assert.Equal(t, 3.0, c.Distance)
	assert.Equal(t, tree.Root().ID, c.Parent())
	assert.Equal(t, []string{"D", "E"}, nodeNames([]*Node{
		tree.Node(c.Children()[0]), tree.Node(c.Children()[1]),
	}))
	assert.Nil(t, tree.Node(99))
	assert.Nil(t, tree.Node(-1))
}

func TestTreeIDsAreBreadthFirst(t *testing.T) {
	tree := mustTree(t, "(B,(D,E)C)A;", nil)
	for i, node := range tree.BFS() {
		assert.Equal(t, NodeID(i), node.ID)
	}
}

func TestTreeNewNil(t *testing.T) {
	assert.Nil(t, New(nil, NodeData{"A": {}}))
}

func TestTreeEmptyNewick(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()
	//
	tree, err := FromNewickString("", NodeData{"A": {}})
	assert.NoError(t, err)
	assert.Nil(t, tree)
	// blank input is handed to the parser, which finds no tree
	tree, err = FromNewickString("  ", nil)
	assert.ErrorIs(t, err, newick.ErrNoTree)
	assert.Nil(t, tree)
}

func TestTreeParseErrorPropagates(t *testing.T) {
	_, err := FromNewickString("(A,B", nil)
	var perr *newick.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestTreeBFS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()
	//
	tree := mustTree(t, "(B,(D,E)C)A;", nil)
	nodes := tree.BFS()
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, nodeNames(nodes))
	seen := make(map[NodeID]bool)
	for _, node := range nodes {
		assert.False(t, seen[node.ID], "node %v visited twice", node)
		seen[node.ID] = true
	}
	assert.Len(t, seen, tree.Len())
}

func TestTreeLeaves(t *testing.T) {
	tree := mustTree(t, "((X,Y)B,(D,E)C)A;", nil)
	assert.Equal(t, []string{"X", "Y", "D", "E"}, nodeNames(tree.Leaves()))
	single := mustTree(t, "A;", nil)
	assert.Equal(t, []string{"A"}, nodeNames(single.Leaves()))
}

func TestTreeAncestors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()
	//
	tree := mustTree(t, "(B,(D,E)C)A;", nil)
	a := tree.Root().ID
	assert.Equal(t, []string{"D", "C", "A"}, nodeNames(tree.Ancestors(a, named(t, tree, "D").ID)))
	assert.Equal(t, []string{"B", "A"}, nodeNames(tree.Ancestors(a, named(t, tree, "B").ID)))
	assert.Equal(t, []string{"A"}, nodeNames(tree.Ancestors(a, a)))
	assert.Nil(t, tree.Ancestors(a, 4711))
	// searching a subtree which does not contain the target
	assert.Nil(t, tree.Ancestors(named(t, tree, "C").ID, named(t, tree, "B").ID))
	assert.Nil(t, tree.Ancestors(4711, a))
}

func TestTreeAncestorsLeftmostMatchWins(t *testing.T) {
	tree := mustTree(t, "(C,B)A;", nil)
	b, c := named(t, tree, "B"), named(t, tree, "C")
	// link B a second time below C, which breaks the single-parent invariant
	c.children = append(c.children, b.ID)
	path := tree.Ancestors(tree.Root().ID, b.ID)
	assert.Equal(t, []string{"B", "C", "A"}, nodeNames(path))
}

func TestTreeNodeData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()
	//
	red := "red"
	tree := mustTree(t, "(B,C)A;", NodeData{"B": {Color: &red}})
	assert.Equal(t, "red", named(t, tree, "B").Data.Color)
	assert.Equal(t, "", named(t, tree, "A").Data.Color)
	assert.Equal(t, "", named(t, tree, "C").Data.Color)
}

func TestTreeNodeDataMatchesAllNamesakes(t *testing.T) {
	project := "Project X"
	tree := mustTree(t, "((S1,S2),(S1,),S3);", nil)
	n := tree.MergeNodeData(NodeData{
		"S1": {ProjectName: &project},
		"":   {ProjectName: &project}, // unnamed nodes are never patched
		"S4": {ProjectName: &project},
	})
	assert.Equal(t, 2, n)
	for _, node := range tree.BFS() {
		if node.Name == "S1" {
			assert.Equal(t, project, node.Data.ProjectName)
		} else {
			assert.Empty(t, node.Data.ProjectName, "node %v", node)
		}
	}
}

func TestTreeNodeDataNegativeDistance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()
	//
	neg, pos := -1.5, 4.0
	data := NodeData{"B": {Distance: &neg}, "C": {Distance: &pos}}
	err := data.Validate()
	assert.ErrorIs(t, err, ErrNegativeDistance)
	assert.Contains(t, err.Error(), `"B"`)
	assert.NoError(t, NodeData{"C": {Distance: &pos}}.Validate())
	tree := mustTree(t, "(B:2,C:3)A;", data)
	assert.Equal(t, 2.0, named(t, tree, "B").Distance)
	assert.Equal(t, 4.0, named(t, tree, "C").Distance)
	_, err = newick.Parse(tree.String())
	assert.NoError(t, err)
}

func TestTreeDetachFromParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()
	//
	tree := mustTree(t, "(B,C,D)A;", nil)
	a, c := tree.Root(), named(t, tree, "C")
	tree.DetachFromParent(c.ID, a.ID)
	assert.Equal(t, []string{"A", "B", "D"}, nodeNames(tree.BFS()))
	assert.Equal(t, NoNode, c.Parent())
	// not a child (anymore): nothing happens
	tree.DetachFromParent(c.ID, a.ID)
	tree.DetachFromParent(a.ID, named(t, tree, "B").ID)
	tree.DetachFromParent(c.ID, 4711)
	assert.Equal(t, []string{"A", "B", "D"}, nodeNames(tree.BFS()))
}

func TestTreeString(t *testing.T) {
	tree := mustTree(t, "(B:2,(D:1,E:1.5)C:3)A;", nil)
	assert.Equal(t, "(B:2,(D:1,E:1.5)C:3)A;", tree.String())
	if diff := cmp.Diff(newickOf(t, "(B:2,(D:1,E:1.5)C:3)A;"), tree.Newick()); diff != "" {
		t.Errorf("Newick() differs from parsed input (-want +got):\n%s", diff)
	}
}

func newickOf(t *testing.T, s string) *newick.Node {
	root, err := newick.Parse(s)
	require.NoError(t, err)
	return root
}

func TestTreeDetachRootFromItself(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	tree := mustTree(t, "(B,C)A;", nil)
	tree.DetachFromParent(tree.Root().ID, tree.Root().ID)
	assert.Equal(t, 3, len(tree.BFS()))
}
