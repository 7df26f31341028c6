// Package io provides JSON import and export for dependency graphs.
//
// # Overview
//
// A snapshot records a [dag.Graph] exactly as a builder produced it, so that
// the tree or diagram of a failed link can be rendered again later without
// the module universe or the dependency manifest at hand.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"names": ["liba"], "selected": "1.0", "paths": ["/m2/liba.klib"]},
//	    {"names": ["libb"], "selected": "2.0"}
//	  ],
//	  "edges": [
//	    {"to": ["liba"], "requested": "1.0"},
//	    {"from": ["liba"], "to": ["libb"], "requested": "1.9"}
//	  ]
//	}
//
// Nodes are identified by their full list of unique names. An edge without
// "from" starts at the module being compiled. Nodes absorbed by compression
// carry "hidden": true.
//
// Nodes and edges are written in canonical order, so exporting the same graph
// twice yields identical bytes.
//
// # Import
//
// [ReadJSON] rebuilds the graph and runs [dag.Graph.Validate] on it. Edges
// referencing unknown nodes are rejected.
package io
