package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/linkdiag/pkg/dag"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	Names    []string `json:"names"`
	Selected string   `json:"selected,omitempty"`
	Paths    []string `json:"paths,omitempty"`
	Hidden   bool     `json:"hidden,omitempty"`
}

type edge struct {
	From      []string `json:"from,omitempty"`
	To        []string `json:"to"`
	Requested string   `json:"requested,omitempty"`
}

// WriteJSON encodes g as JSON and writes it to w. Nodes and edges follow
// the canonical key order of g.
func WriteJSON(g dag.Graph, w io.Writer) error {
	nodes := g.Nodes()
	out := graph{Nodes: make([]node, 0, len(nodes)), Edges: make([]edge, 0, g.EdgeCount())}
	for _, n := range nodes {
		out.Nodes = append(out.Nodes, node{
			Names:    n.ID.Names(),
			Selected: n.SelectedVersion,
			Paths:    n.ArtifactPaths,
			Hidden:   !n.VisibleAtRoot,
		})
	}
	for _, n := range nodes {
		for _, d := range n.Dependents() {
			e := edge{To: n.ID.Names(), Requested: n.RequestedVersions[d]}
			if !d.IsRoot() {
				e.From = d.Names()
			}
			out.Edges = append(out.Edges, e)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g dag.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a graph written by [WriteJSON]. Unknown fields are
// rejected. The result is validated before it is returned.
func ReadJSON(r io.Reader) (dag.Graph, error) {
	var data graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := make(dag.Graph, len(data.Nodes))
	for _, n := range data.Nodes {
		id, err := dag.NewModuleID(n.Names...)
		if err != nil {
			return nil, fmt.Errorf("node %v: %w", n.Names, err)
		}
		nd := dag.NewNode(id, n.Selected, n.Paths...)
		nd.VisibleAtRoot = !n.Hidden
		if err := g.Add(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
	}
	for _, e := range data.Edges {
		to, err := dag.NewModuleID(e.To...)
		if err != nil {
			return nil, fmt.Errorf("edge to %v: %w", e.To, err)
		}
		from := dag.Root
		if len(e.From) > 0 {
			if from, err = dag.NewModuleID(e.From...); err != nil {
				return nil, fmt.Errorf("edge from %v: %w", e.From, err)
			}
		}
		n, ok := g[to]
		if !ok {
			return nil, fmt.Errorf("edge %s->%s: %w", from, to, dag.ErrDanglingDependency)
		}
		n.SetRequested(from, e.Requested)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (dag.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
