package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/phylo/newick"
	"github.com/npillmayer/phylo/tree"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// readNodeData reads a node data file. JSON files are read as YAML.
func readNodeData(path string) (tree.NodeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data := tree.NodeData{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("node data %s: %w", path, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// loadTree reads a Newick file, decorates it with the node data file given
// by --data and re-roots it if --reroot is set. A file which does not
// contain a tree results in a nil tree and no error.
func (a *app) loadTree(path string) (*tree.Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data tree.NodeData
	if a.dataFile != "" {
		if data, err = readNodeData(a.dataFile); err != nil {
			return nil, err
		}
		a.logger.Debug("Node data loaded", zap.String("file", a.dataFile), zap.Int("entries", len(data)))
	}
	t, err := tree.FromNewickString(string(raw), data)
	if errors.Is(err, newick.ErrNoTree) {
		t, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t == nil {
		a.logger.Debug("No tree in file", zap.String("file", path))
		return nil, nil
	}
	a.logger.Debug("Tree loaded", zap.String("file", path), zap.Int("nodes", t.Len()))
	if a.reroot != "" {
		if err := t.RerootAt(a.reroot); err != nil {
			return nil, err
		}
		a.logger.Debug("Tree re-rooted", zap.String("root", a.reroot))
	}
	return t, nil
}
