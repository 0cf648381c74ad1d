package types

import (
	"encoding/json"
	"fmt"
)

// NodeType classifies a graph vertex.
type NodeType string

const (
	NodeExperiment NodeType = "experiment"
	NodeOrganism   NodeType = "organism"
	NodeMission    NodeType = "mission"
	NodeKeyword    NodeType = "keyword"

	// Fallback-graph only types.
	NodeCondition NodeType = "condition"
	NodeProcess   NodeType = "process"
)

// EdgeKind distinguishes directly asserted relations from derived ones.
type EdgeKind string

const (
	EdgeKindPrimary    EdgeKind = "primary"
	EdgeKindSimilarity EdgeKind = "similarity"
)

// Node is a deduplicated graph vertex. ID is a pure function of
// (type, normalized label); two mentions of the same entity value always
// resolve to the same node.
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  NodeType `json:"type"`
	Size  int      `json:"size"`
	Color string   `json:"color"`
}

// Edge is a directed relation between two nodes. Type carries the wire
// relation tag consumed by the visualization styling (the relation label
// for primary edges, "similarity" for derived ones).
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Label  string   `json:"label"`
	Type   string   `json:"type,omitempty"`
	Style  string   `json:"style,omitempty"`
	Kind   EdgeKind `json:"-"`
}

// Layout is the fixed layout directive attached for the front end.
type Layout struct {
	Name              string `json:"name"`
	Animate           bool   `json:"animate,omitempty"`
	AnimationDuration int    `json:"animationDuration,omitempty"`
}

// StyleRule is one type-keyed visual rule in the graph style sheet.
type StyleRule struct {
	Selector string         `json:"selector"`
	Style    map[string]any `json:"style"`
}

// Graph holds the assembled node/edge set. Node insertion order is
// preserved for stable rendering; node and edge ids are unique.
type Graph struct {
	nodes     []*Node
	nodeIndex map[string]*Node
	edges     []*Edge
	edgeIndex map[string]struct{}

	Layout Layout
	Style  []StyleRule
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[string]*Node),
		edgeIndex: make(map[string]struct{}),
	}
}

// AddNode inserts n unless a node with the same id already exists, in
// which case the call is a no-op and false is returned. Re-adding an id
// under a different node type breaks the identity-resolution guarantee
// the whole graph relies on, so it fails loudly.
func (g *Graph) AddNode(n *Node) bool {
	if existing, ok := g.nodeIndex[n.ID]; ok {
		if existing.Type != n.Type {
			panic(fmt.Sprintf("node id %q resolved for both %q and %q", n.ID, existing.Type, n.Type))
		}
		return false
	}
	g.nodeIndex[n.ID] = n
	g.nodes = append(g.nodes, n)
	return true
}

// AddEdge inserts e unless an edge with the same id already exists.
func (g *Graph) AddEdge(e *Edge) bool {
	if _, ok := g.edgeIndex[e.ID]; ok {
		return false
	}
	g.edgeIndex[e.ID] = struct{}{}
	g.edges = append(g.edges, e)
	return true
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodeIndex[id]
	return n, ok
}

// HasEdge reports whether an edge with the given id exists.
func (g *Graph) HasEdge(id string) bool {
	_, ok := g.edgeIndex[id]
	return ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

type nodeEnvelope struct {
	Data *Node `json:"data"`
}

type edgeEnvelope struct {
	Data *Edge `json:"data"`
}

type graphPayload struct {
	Nodes  []nodeEnvelope `json:"nodes"`
	Edges  []edgeEnvelope `json:"edges"`
	Layout Layout         `json:"layout"`
	Style  []StyleRule    `json:"style"`
}

// MarshalJSON renders the payload shape consumed by the visualization
// front end: nodes and edges wrapped in {"data": ...} envelopes plus the
// layout and style tables.
func (g *Graph) MarshalJSON() ([]byte, error) {
	payload := graphPayload{
		Nodes:  make([]nodeEnvelope, 0, len(g.nodes)),
		Edges:  make([]edgeEnvelope, 0, len(g.edges)),
		Layout: g.Layout,
		Style:  g.Style,
	}
	if payload.Style == nil {
		payload.Style = []StyleRule{}
	}
	for _, n := range g.nodes {
		payload.Nodes = append(payload.Nodes, nodeEnvelope{Data: n})
	}
	for _, e := range g.edges {
		payload.Edges = append(payload.Edges, edgeEnvelope{Data: e})
	}
	return json.Marshal(payload)
}
