package graph

import (
	"github.com/nullspace/nullspace/pkg/types"
)

const (
	// Keyword edges per experiment are capped to keep the rendered
	// graph readable; extra keywords are ignored.
	maxKeywordEdges = 3

	// Experiment labels are truncated for display only. The node id is
	// derived from the full, normalized title.
	labelTruncateLen = 30
)

// Relation labels for primary edges.
const (
	RelationStudies     = "studies"
	RelationConductedIn = "conducted_in"
	RelationInvolves    = "involves"
	RelationSimilarTo   = "similar_to"
)

// Assemble builds the primary node/edge set for a batch of studies.
// Nodes and edges are deduplicated through their deterministic ids:
// adding an existing id is a no-op, so assembling the same record twice
// changes nothing. Records missing optional fields simply contribute
// fewer nodes. The result carries no render metadata; see Attach.
func Assemble(studies []types.Study) *types.Graph {
	g := types.NewGraph()

	for _, s := range studies {
		expID := Resolve(types.NodeExperiment, s.Title)
		if expID == "" {
			continue
		}
		g.AddNode(newNode(expID, truncateLabel(s.Title), types.NodeExperiment))

		if orgID := Resolve(types.NodeOrganism, s.Organism); orgID != "" {
			g.AddNode(newNode(orgID, s.Organism, types.NodeOrganism))
			g.AddEdge(primaryEdge(expID, orgID, RelationStudies))
		}

		if missionID := Resolve(types.NodeMission, s.Mission); missionID != "" {
			g.AddNode(newNode(missionID, s.Mission, types.NodeMission))
			g.AddEdge(primaryEdge(expID, missionID, RelationConductedIn))
		}

		keywords := s.Keywords
		if len(keywords) > maxKeywordEdges {
			keywords = keywords[:maxKeywordEdges]
		}
		for _, kw := range keywords {
			kwID := Resolve(types.NodeKeyword, kw)
			if kwID == "" {
				continue
			}
			g.AddNode(newNode(kwID, kw, types.NodeKeyword))
			g.AddEdge(primaryEdge(expID, kwID, RelationInvolves))
		}
	}

	return g
}

func newNode(id, label string, t types.NodeType) *types.Node {
	return &types.Node{
		ID:    id,
		Label: label,
		Type:  t,
		Size:  nodeSizes[t],
		Color: nodeColors[t],
	}
}

// primaryEdge builds a directly asserted edge. The id is a function of
// the ordered (source, target) pair, so a record re-asserting the same
// relation never duplicates it.
func primaryEdge(source, target, label string) *types.Edge {
	return &types.Edge{
		ID:     source + "_" + target,
		Source: source,
		Target: target,
		Label:  label,
		Type:   label,
		Kind:   types.EdgeKindPrimary,
	}
}

func truncateLabel(title string) string {
	runes := []rune(title)
	if len(runes) <= labelTruncateLen {
		return title
	}
	return string(runes[:labelTruncateLen]) + "..."
}
