package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Data holds the attributes a dendrogram shows for a node: which sample or
// reference sequence the node stands for, and metadata used for coloring.
// For reference sequences, only Accession is usually set.
type Data struct {
	SampleID        int
	PipelineRunID   int
	Accession       string
	ProjectName     string
	HostGenomeName  string
	CoverageBreadth float64
	Color           string
	Metadata        map[string]string
}

// Attribute returns the value of an attribute, addressed by a path as used
// for color grouping: "project_name", "host_genome_name", "accession",
// "color", "sample_id", "pipeline_run_id" or "metadata.<key>".
// The second return value is false if the attribute is not set.
func (d Data) Attribute(path string) (string, bool) {
	if key, ok := strings.CutPrefix(path, "metadata."); ok {
		v, found := d.Metadata[key]
		return v, found && v != ""
	}
	var v string
	switch path {
	case "project_name":
		v = d.ProjectName
	case "host_genome_name":
		v = d.HostGenomeName
	case "accession":
		v = d.Accession
	case "color":
		v = d.Color
	case "sample_id":
		if d.SampleID != 0 {
			v = strconv.Itoa(d.SampleID)
		}
	case "pipeline_run_id":
		if d.PipelineRunID != 0 {
			v = strconv.Itoa(d.PipelineRunID)
		}
	}
	return v, v != ""
}

// Patch is a partial update for a node. Every non-nil field overwrites the
// corresponding field of the node; nil fields leave the node untouched.
// Metadata, if non-nil, replaces the node's metadata as a whole.
//
// Field keys for JSON and YAML follow the snake_case convention of the
// node data files produced by the web application.
type Patch struct {
	Distance        *float64          `json:"distance,omitempty" yaml:"distance,omitempty"`
	SampleID        *int              `json:"sample_id,omitempty" yaml:"sample_id,omitempty"`
	PipelineRunID   *int              `json:"pipeline_run_id,omitempty" yaml:"pipeline_run_id,omitempty"`
	Accession       *string           `json:"accession,omitempty" yaml:"accession,omitempty"`
	ProjectName     *string           `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	HostGenomeName  *string           `json:"host_genome_name,omitempty" yaml:"host_genome_name,omitempty"`
	CoverageBreadth *float64          `json:"coverage_breadth,omitempty" yaml:"coverage_breadth,omitempty"`
	Color           *string           `json:"color,omitempty" yaml:"color,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NodeData maps node names to patches.
type NodeData map[string]Patch

// Validate checks a patch for values a node cannot hold. Distances must not
// be negative.
func (p Patch) Validate() error {
	if p.Distance != nil && *p.Distance < 0 {
		return fmt.Errorf("%w: %g", ErrNegativeDistance, *p.Distance)
	}
	return nil
}

// Validate checks every patch of d, see Patch.Validate.
func (d NodeData) Validate() error {
	for name, p := range d {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("node data for %q: %w", name, err)
		}
	}
	return nil
}

// ApplyTo overwrites the fields of node with the non-nil fields of p.
// A negative distance is not applied, the node keeps its distance.
func (p Patch) ApplyTo(node *Node) {
	if p.Distance != nil {
		if *p.Distance < 0 {
			tracer().Infof("ignoring negative distance %g for %v", *p.Distance, node)
		} else {
			node.Distance = *p.Distance
		}
	}
	if p.SampleID != nil {
		node.Data.SampleID = *p.SampleID
	}
	if p.PipelineRunID != nil {
		node.Data.PipelineRunID = *p.PipelineRunID
	}
	if p.Accession != nil {
		node.Data.Accession = *p.Accession
	}
	if p.ProjectName != nil {
		node.Data.ProjectName = *p.ProjectName
	}
	if p.HostGenomeName != nil {
		node.Data.HostGenomeName = *p.HostGenomeName
	}
	if p.CoverageBreadth != nil {
		node.Data.CoverageBreadth = *p.CoverageBreadth
	}
	if p.Color != nil {
		node.Data.Color = *p.Color
	}
	if p.Metadata != nil {
		node.Data.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			node.Data.Metadata[k] = v
		}
	}
}
