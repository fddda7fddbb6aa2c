package dendro

import (
	"sort"

	"github.com/npillmayer/phylo/tree"
)

// DefaultCoverageThreshold is the coverage breadth below which a sample
// node gets a warning.
const DefaultCoverageThreshold = 0.25

// DistancesToRoot returns, for every node reachable from the root, the sum
// of branch lengths on the path from the root, together with the maximum
// of these sums. The root's own distance counts as an offset for the
// whole tree.
func DistancesToRoot(t *tree.Tree) (map[tree.NodeID]float64, float64) {
	dist := make(map[tree.NodeID]float64, t.Len())
	maxDist := 0.0
	var descend func(node *tree.Node, offset float64)
	descend = func(node *tree.Node, offset float64) {
		d := node.Distance + offset
		dist[node.ID] = d
		if d > maxDist {
			maxDist = d
		}
		for _, ch := range node.Children() {
			descend(t.Node(ch), d)
		}
	}
	descend(t.Root(), 0)
	return dist, maxDist
}

// Selection is a set of node IDs a user has selected for highlighting.
type Selection map[tree.NodeID]struct{}

// Toggle adds id to the selection, or removes it if already selected.
func (sel Selection) Toggle(id tree.NodeID) {
	if _, ok := sel[id]; ok {
		delete(sel, id)
	} else {
		sel[id] = struct{}{}
	}
}

// Has is true if id is selected.
func (sel Selection) Has(id tree.NodeID) bool {
	_, ok := sel[id]
	return ok
}

// IDs returns the selected IDs in ascending order.
func (sel Selection) IDs() []tree.NodeID {
	ids := make([]tree.NodeID, 0, len(sel))
	for id := range sel {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Highlight returns the set of nodes on the paths from the root to every
// selected leaf. Selected inner nodes do not highlight anything.
func Highlight(t *tree.Tree, sel Selection) map[tree.NodeID]bool {
	highlight := make(map[tree.NodeID]bool)
	root := t.Root().ID
	for _, leaf := range t.Leaves() {
		if !sel.Has(leaf.ID) {
			continue
		}
		for _, anc := range t.Ancestors(root, leaf.ID) {
			highlight[anc.ID] = true
		}
	}
	tracer().Debugf("%d selected, %d nodes highlighted", len(sel), len(highlight))
	return highlight
}

// LowCoverage returns the nodes, in breadth-first order, with a known
// coverage breadth below threshold. A coverage breadth of 0 counts as
// unknown.
func LowCoverage(t *tree.Tree, threshold float64) []*tree.Node {
	var low []*tree.Node
	for _, node := range t.BFS() {
		if cb := node.Data.CoverageBreadth; cb > 0 && cb < threshold {
			low = append(low, node)
		}
	}
	return low
}
