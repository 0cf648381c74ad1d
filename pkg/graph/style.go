package graph

import "github.com/nullspace/nullspace/pkg/types"

// Fixed per-type node sizing and coloring. Read-only after init.
var nodeSizes = map[types.NodeType]int{
	types.NodeExperiment: 25,
	types.NodeOrganism:   20,
	types.NodeMission:    18,
	types.NodeKeyword:    15,
}

var nodeColors = map[types.NodeType]string{
	types.NodeExperiment: "#0B3D91",
	types.NodeOrganism:   "#EF4444",
	types.NodeMission:    "#6366F1",
	types.NodeKeyword:    "#10B981",
}

var defaultLayout = types.Layout{
	Name:              "cose",
	Animate:           true,
	AnimationDuration: 1000,
}

// styleRules is the process-wide style sheet for the visualization front
// end, constructed once and shared read-only.
var styleRules = []types.StyleRule{
	{
		Selector: "node",
		Style: map[string]any{
			"background-color": "data(color)",
			"label":            "data(label)",
			"width":            "data(size)",
			"height":           "data(size)",
			"text-valign":      "center",
			"text-halign":      "center",
			"color":            "#ffffff",
			"font-size":        "10px",
			"font-family":      "Inter, sans-serif",
		},
	},
	{
		Selector: `node[type="experiment"]`,
		Style: map[string]any{
			"shape":        "rectangle",
			"border-width": 2,
			"border-color": "#ffffff",
		},
	},
	{
		Selector: `node[type="organism"]`,
		Style:    map[string]any{"shape": "ellipse"},
	},
	{
		Selector: `node[type="mission"]`,
		Style:    map[string]any{"shape": "diamond"},
	},
	{
		Selector: `node[type="keyword"]`,
		Style:    map[string]any{"shape": "triangle"},
	},
	{
		Selector: "edge",
		Style: map[string]any{
			"width":              2,
			"line-color":         "#6366F1",
			"target-arrow-color": "#6366F1",
			"target-arrow-shape": "triangle",
			"curve-style":        "bezier",
			"opacity":            0.7,
		},
	},
	{
		Selector: `edge[type="similarity"]`,
		Style: map[string]any{
			"line-style":         "dashed",
			"line-color":         "#10B981",
			"target-arrow-color": "#10B981",
		},
	},
}

// Attach sets the fixed layout directive and style sheet on g and
// returns it. The tables are static configuration, not computed.
func Attach(g *types.Graph) *types.Graph {
	g.Layout = defaultLayout
	g.Style = styleRules
	return g
}

// Fallback returns the small fixed graph served when no records could be
// resolved. Callers must never see a graph-generation failure; an empty
// batch degrades to this payload instead.
func Fallback() *types.Graph {
	g := types.NewGraph()

	g.AddNode(&types.Node{ID: "microgravity", Label: "Microgravity", Type: types.NodeCondition, Size: 20, Color: "#6366F1"})
	g.AddNode(&types.Node{ID: "gene_expression", Label: "Gene Expression", Type: types.NodeProcess, Size: 18, Color: "#10B981"})
	g.AddNode(&types.Node{ID: "arabidopsis", Label: "Arabidopsis", Type: types.NodeOrganism, Size: 16, Color: "#EF4444"})

	g.AddEdge(&types.Edge{ID: "edge1", Source: "microgravity", Target: "gene_expression", Label: "affects", Kind: types.EdgeKindPrimary})
	g.AddEdge(&types.Edge{ID: "edge2", Source: "gene_expression", Target: "arabidopsis", Label: "observed_in", Kind: types.EdgeKindPrimary})

	g.Layout = types.Layout{Name: "circle"}
	g.Style = styleRules
	return g
}
