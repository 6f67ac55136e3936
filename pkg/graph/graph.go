// Package graph defines the serializable node/edge artifact produced by
// the tree converter and the CFG renderer.
//
// The artifact is the contract between conversion and rendering: a flat
// list of labeled nodes plus directed edges, consumable by the DOT
// emitter, the HTTP API, and the cache. The format is human-readable
// JSON designed for round-trip fidelity: convert → export → re-import
// renders identically.
package graph

import (
	"encoding/json"
	"io"
	"os"
)

// Markers distinguishing CFG entry and exit nodes. Tree-converted nodes
// carry no marker and render with the default shape.
const (
	MarkerInitial  = "initial"
	MarkerTerminal = "terminal"
)

// Graph is the (nodes, edges) artifact handed to rendering collaborators.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a single rendered node. The identity is opaque and unique
// within one conversion; nodes are never mutated after creation.
type Node struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"` // display grouping, from the catalog
	Marker   string `json:"marker,omitempty"`   // "", MarkerInitial, or MarkerTerminal
}

// Edge is a directed edge between two node identities, with an optional
// label (a CFG branch condition).
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Node returns the node with the given identity, if present.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal serializes the graph to indented JSON.
func Marshal(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Unmarshal deserializes JSON bytes to a Graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// Read reads a JSON graph from r.
func Read(r io.Reader) (Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Graph{}, err
	}
	return Unmarshal(data)
}

// ReadFile reads a JSON graph from a file.
func ReadFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, err
	}
	defer f.Close()
	return Read(f)
}

// Write writes the graph as indented JSON to w.
func Write(w io.Writer, g Graph) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
