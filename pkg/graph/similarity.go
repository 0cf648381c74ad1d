package graph

import (
	"sort"

	"github.com/nullspace/nullspace/pkg/types"
)

// InferSimilarity adds derived "similar_to" edges between organism nodes
// that share at least one keyword through a common experiment, and
// returns the augmented graph.
//
// Only organism nodes are compared. The upstream behavior this
// reproduces never generalized the shared-attribute idea to other entity
// types, and that narrowing is preserved deliberately.
//
// The edge id is canonical on the lexicographically sorted node pair, so
// running inference again on the same graph is a no-op.
func InferSimilarity(g *types.Graph) *types.Graph {
	// Keyword sets per experiment and organism links per experiment,
	// from primary edges only.
	expKeywords := make(map[string][]string)
	expOrganisms := make(map[string][]string)

	for _, e := range g.Edges() {
		if e.Kind != types.EdgeKindPrimary {
			continue
		}
		src, ok := g.Node(e.Source)
		if !ok || src.Type != types.NodeExperiment {
			continue
		}
		tgt, ok := g.Node(e.Target)
		if !ok {
			continue
		}
		switch tgt.Type {
		case types.NodeKeyword:
			expKeywords[e.Source] = append(expKeywords[e.Source], e.Target)
		case types.NodeOrganism:
			expOrganisms[e.Source] = append(expOrganisms[e.Source], e.Target)
		}
	}

	// Co-occurrence: an organism "has" every keyword linked to any
	// experiment that also links to it.
	organismKeywords := make(map[string]map[string]struct{})
	for expID, organisms := range expOrganisms {
		for _, orgID := range organisms {
			for _, kwID := range expKeywords[expID] {
				set, ok := organismKeywords[orgID]
				if !ok {
					set = make(map[string]struct{})
					organismKeywords[orgID] = set
				}
				set[kwID] = struct{}{}
			}
		}
	}

	// Fixed total order over organisms makes each unordered pair
	// canonical and the output deterministic.
	organisms := make([]string, 0, len(organismKeywords))
	for orgID := range organismKeywords {
		organisms = append(organisms, orgID)
	}
	sort.Strings(organisms)

	for i, a := range organisms {
		for _, b := range organisms[i+1:] {
			if !shareKeyword(organismKeywords[a], organismKeywords[b]) {
				continue
			}
			g.AddEdge(&types.Edge{
				ID:     "similar_" + a + "_" + b,
				Source: a,
				Target: b,
				Label:  RelationSimilarTo,
				Type:   string(types.EdgeKindSimilarity),
				Style:  "dashed",
				Kind:   types.EdgeKindSimilarity,
			})
		}
	}

	return g
}

func shareKeyword(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for kw := range a {
		if _, ok := b[kw]; ok {
			return true
		}
	}
	return false
}
