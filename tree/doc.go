/*
Package tree implements rooted, ordered, weighted trees as used for
phylogenetic dendrograms.

Trees are built from Newick input (see package newick) and may be decorated
with per-node data, matched by node name. Nodes live in an arena owned by
the tree and are addressed by a NodeID, which stays stable for the lifetime
of the tree. Children are kept as an ordered list of IDs, and each node
remembers the ID of its parent.

The one interesting mutation is re-rooting: making an arbitrary node the
new root reverses the parent/child direction of every edge on the path from
the old root and swaps the branch lengths along that path, so that the set
of edges and their weights stay the same.

   t, err := tree.FromNewickString("(B:2,C:3)A;", nil)
   ...
   err = t.Reroot(t.NodesNamed("B")[0].ID)
   fmt.Println(t)     // ((C:3)A:2)B;

Trees are not safe for concurrent use. Clients have to serialize calls to
Reroot, MergeNodeData and DetachFromParent against any readers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylo.tree'.
func tracer() tracing.Trace {
	return tracing.Select("phylo.tree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("phylo.tree: "+msg, msgargs...)
		panic(msg)
	}
}
