package newick

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	var n []string
	for _, node := range nodes {
		n = append(n, node.Name)
	}
	return n
}

func TestParserReadAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.newick")
	defer teardown()
	//
	r := NewReader(strings.NewReader("(A,B,(X,Y)C)ROOT;(A,B,C)ROOT;"))
	trees, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, trees, 2)
	assert.Equal(t, "ROOT", trees[0].Name)
	assert.Equal(t, []string{"A", "B", "C"}, names(trees[0].Children))
	assert.Equal(t, []string{"X", "Y"}, names(trees[0].Children[2].Children))
	assert.Equal(t, 6, trees[0].Len())
	assert.Equal(t, 4, trees[1].Len())
}

func TestParserBranchLengths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.newick")
	defer teardown()
	//
	root, err := Parse("(A:0.1,B:0.2,(C:0.3,D:0.4):0.5);")
	require.NoError(t, err)
	require.Nil(t, root.Length)
	require.Len(t, root.Children, 3)
	inner := root.Children[2]
	assert.Equal(t, "", inner.Name)
	require.NotNil(t, inner.Length)
	assert.Equal(t, 0.5, *inner.Length)
	require.NotNil(t, inner.Children[1].Length)
	assert.Equal(t, 0.4, *inner.Children[1].Length)
}

func TestParserAnonymousNodes(t *testing.T) {
	root, err := Parse("(,,(,));")
	require.NoError(t, err)
	assert.Equal(t, 6, root.Len())
}

func TestParserMissingTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.newick")
	defer teardown()
	//
	root, err := Parse("(B)A")
	require.NoError(t, err)
	assert.Equal(t, "A", root.Name)
	assert.Equal(t, []string{"B"}, names(root.Children))
}

func TestParserNoTree(t *testing.T) {
	for _, input := range []string{"", "   \n", "[just a comment]"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrNoTree, "input %q", input)
	}
	r := NewReader(strings.NewReader(""))
	_, err := r.ReadTree()
	assert.Equal(t, io.EOF, err)
}

func TestParserErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.newick")
	defer teardown()
	//
	for _, input := range []string{
		"(A,B",
		"(A,B));",
		"((A,B);",
		"(A B);",
		"(A:1.2.3,B);",
		"(A:-1,B);",
		"(A,B)C D;",
		"('open,B);",
	} {
		_, err := Parse(input)
		var perr *ParseError
		if assert.ErrorAs(t, err, &perr, "input %q", input) {
			t.Logf("%q: %v", input, err)
			assert.Equal(t, 1, perr.Line)
		}
	}
}

func TestParserErrorLine(t *testing.T) {
	_, err := Parse("(A,\nB,\nC:abc);")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
}

func TestParserInvalidLengthUnwraps(t *testing.T) {
	_, err := Parse("(A:1e,B);")
	require.Error(t, err)
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr), "expected strconv error inside %v", err)
}

func TestParserLargeInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.newick")
	defer teardown()
	//
	var sb strings.Builder
	sb.WriteString("(")
	for i := 0; i < 2000; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("taxon_" + strconv.Itoa(i) + ":0.001")
	}
	sb.WriteString(")root;")
	root, err := Parse(sb.String())
	require.NoError(t, err)
	assert.Len(t, root.Children, 2000)
	assert.Equal(t, "taxon_1999", root.Children[1999].Name)
}
