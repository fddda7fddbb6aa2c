/*
Package phylodbg implements helpers to debug and inspect a phylogenetic tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package phylodbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/phylo/tree"
	"github.com/npillmayer/schuko/tracing"
	tp "github.com/xlab/treeprint"
)

// tracer traces with key 'phylo.dbg'.
func tracer() tracing.Trace {
	return tracing.Select("phylo.dbg")
}

// Label returns a short description of a node: its name (or "N/A"), its ID
// and its branch length.
func Label(node *tree.Node) string {
	name := node.Name
	if name == "" {
		name = "N/A"
	}
	return fmt.Sprintf("%s #%d (%g)", name, node.ID, node.Distance)
}

// Print returns an indented drawing of a tree, one node per line. Clients
// may pass a decorate function to append information to node labels; it
// may be nil.
func Print(t *tree.Tree, decorate func(*tree.Node) string) string {
	p := tp.New()
	root := t.Root()
	p.SetValue(label(root, decorate))
	printChildren(p, t, root, decorate)
	return p.String()
}

func printChildren(p tp.Tree, t *tree.Tree, node *tree.Node, decorate func(*tree.Node) string) {
	for _, chID := range node.Children() {
		ch := t.Node(chID)
		if ch.IsLeaf() {
			p.AddNode(label(ch, decorate))
			continue
		}
		branch := p.AddBranch(label(ch, decorate))
		printChildren(branch, t, ch, decorate)
	}
}

func label(node *tree.Node, decorate func(*tree.Node) string) string {
	l := Label(node)
	if decorate != nil {
		if d := decorate(node); d != "" {
			l += " " + d
		}
	}
	return l
}

// --- GraphViz ---------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

type node struct {
	N           *tree.Node
	Name        string
	Highlighted bool
}

type edge struct {
	N1, N2 node
}

// ToGraphViz outputs a diagram for a tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the tree, a Writer,
// and an optional set of highlighted nodes, which will be drawn filled.
// Edges are labelled with branch lengths.
func ToGraphViz(t *tree.Tree, w io.Writer, highlight map[tree.NodeID]bool) error {
	tmpl, err := template.New("tree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("treenode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(treeNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("treeedge").Parse(treeEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	tracer().Debugf("writing GraphViz for tree with %d nodes", t.Len())
	if err = nodes(t, t.Root(), w, highlight, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func dotNode(n *tree.Node, highlight map[tree.NodeID]bool) node {
	return node{N: n, Name: fmt.Sprintf("node%05d", n.ID), Highlighted: highlight[n.ID]}
}

func nodes(t *tree.Tree, n *tree.Node, w io.Writer, highlight map[tree.NodeID]bool,
	gparams *graphParamsType) error {
	//
	parent := dotNode(n, highlight)
	if err := gparams.NodeTmpl.Execute(w, parent); err != nil {
		return err
	}
	for _, chID := range n.Children() {
		ch := t.Node(chID)
		if err := nodes(t, ch, w, highlight, gparams); err != nil {
			return err
		}
		if err := gparams.EdgeTmpl.Execute(w, edge{parent, dotNode(ch, highlight)}); err != nil {
			return err
		}
	}
	return nil
}

func shortText(n *tree.Node) string {
	s := n.Name
	if r := []rune(s); len(r) > 24 {
		s = string(r[:24]) + "..."
	}
	return fmt.Sprintf("%q", strings.ReplaceAll(s, "__", " "))
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=11] ;
`

const treeNodeTmpl = `{{ if .N.IsLeaf }}{{ .Name }}	[ label={{ shortstring .N }} shape=box style={{ if .Highlighted }}"filled,bold" fillcolor=lightblue3{{ else }}filled fillcolor=grey95{{ end }} ] ;
{{ else }}{{ .Name }}	[ label={{ shortstring .N }} shape=point width=0.1{{ if .Highlighted }} color=blue{{ end }} ] ;
{{ end }}`

const treeEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [dir=none weight=1 label="{{ printf "%g" .N2.N.Distance }}"{{ if and .N1.Highlighted .N2.Highlighted }} color=blue penwidth=2{{ end }}] ;
`
