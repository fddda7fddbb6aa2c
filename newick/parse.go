package newick

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader corresponds to the state necessary to read trees from Newick
// formatted input.
type Reader struct {
	lx        *lexer
	lookahead *item
}

// NewReader returns a reader ready for reading trees from `r`.
func NewReader(r io.Reader) *Reader {
	return &Reader{lx: lex(r)}
}

// Parse parses the first tree in s. Any input following the first tree
// is ignored. If s does not contain a tree, ErrNoTree is returned.
func Parse(s string) (*Node, error) {
	root, err := NewReader(strings.NewReader(s)).ReadTree()
	if err == io.EOF {
		return nil, ErrNoTree
	}
	return root, err
}

// ReadAll returns all of the Newick trees in the source input. The first
// error that occurs is returned with no trees. The error is never `io.EOF`.
func (r *Reader) ReadAll() ([]*Node, error) {
	trees := make([]*Node, 0)
	for {
		tree, err := r.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// ReadTree reads a single tree from the source input. If the end of the
// input is reached, then a nil tree is returned with `io.EOF` as the error.
func (r *Reader) ReadTree() (*Node, error) {
	switch r.peek().typ {
	case itemEOF:
		return nil, io.EOF
	case itemError:
		return nil, expectErr(r.next(), "a tree")
	}
	root, err := r.subtree()
	if err != nil {
		return nil, err
	}
	switch it := r.next(); it.typ {
	case itemTerminal:
	case itemEOF:
		tracer().Debugf("newick: tree without terminal '%c' at end of input", terminal)
	default:
		return nil, expectErr(it, fmt.Sprintf("a terminal '%c'", terminal))
	}
	return root, nil
}

func (r *Reader) next() item {
	if r.lookahead != nil {
		it := *r.lookahead
		r.lookahead = nil
		return it
	}
	return r.lx.nextItem()
}

func (r *Reader) peek() item {
	if r.lookahead == nil {
		it := r.lx.nextItem()
		r.lookahead = &it
	}
	return *r.lookahead
}

// subtree parses a descendant list (if present) followed by an optional
// label and an optional branch length.
func (r *Reader) subtree() (*Node, error) {
	node := &Node{}
	if r.peek().typ == itemDescendantsStart {
		r.next()
	DESCENDANTS:
		for {
			child, err := r.subtree()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
			switch it := r.next(); it.typ {
			case itemDelimiter:
				// another sibling follows
			case itemDescendantsEnd:
				break DESCENDANTS
			default:
				return nil, expectErr(it, "',' or ')'")
			}
		}
	}
	if r.peek().typ == itemLabel {
		node.Name = r.next().val
	}
	if r.peek().typ == itemLength {
		it := r.next()
		length, err := parseLength(it)
		if err != nil {
			return nil, err
		}
		node.Length = &length
	}
	if r.peek().typ == itemError {
		return nil, expectErr(r.next(), "")
	}
	return node, nil
}

func parseLength(it item) (float64, error) {
	length, err := strconv.ParseFloat(it.val, 64)
	if err != nil {
		return 0, &ParseError{
			Line: it.line,
			Msg:  fmt.Sprintf("invalid branch length %q", it.val),
			Err:  err,
		}
	}
	if length < 0 {
		return 0, errf(it.line, "negative branch length %q", it.val)
	}
	return length, nil
}

func expectErr(it item, expected string) error {
	if it.typ == itemError {
		return errf(it.line, "%s", it.val)
	}
	return errf(it.line, "unexpected %s, expected %s", it.typ, expected)
}
