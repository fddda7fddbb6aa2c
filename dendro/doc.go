/*
Package dendro computes the data a dendrogram view needs from a tree:
distances to the root for horizontal placement, highlighted paths for
selected leaves, color groups from node attributes, and low-coverage
warnings.

Nothing in here draws; layout in pixels is left to the renderer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dendro

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylo.dendro'.
func tracer() tracing.Trace {
	return tracing.Select("phylo.dendro")
}
