/*
Package newick reads and writes trees in the Newick format. The format
follows the conventions established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.

Labels may be unquoted or single-quoted (with '' standing for a literal
quote), comments in square brackets are skipped, and branch lengths are
parsed as non-negative floats. A missing terminal ';' is tolerated at
the end of the input.

The reader produces raw nodes only. Package tree turns them into a tree
with stable node identifiers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package newick

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylo.newick'.
func tracer() tracing.Trace {
	return tracing.Select("phylo.newick")
}

// ErrNoTree is returned by Parse if the input does not contain a tree.
var ErrNoTree = errors.New("input does not contain a Newick tree")

// ParseError is returned for malformed Newick input. Err is set if the
// error was caused by a lower level error, e.g. from converting a branch
// length.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func errf(line int, format string, v ...interface{}) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, v...)}
}
