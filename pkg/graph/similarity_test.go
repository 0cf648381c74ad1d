package graph

import (
	"testing"

	"github.com/nullspace/nullspace/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioStudies() []types.Study {
	return []types.Study{
		{
			ID:       "S1",
			Title:    "Muscle Atrophy Study",
			Organism: "Mus musculus",
			Keywords: []string{"microgravity", "muscle atrophy"},
		},
		{
			ID:       "S2",
			Title:    "Plant Gene Expression Study",
			Organism: "Arabidopsis thaliana",
			Keywords: []string{"microgravity", "gene expression"},
		},
	}
}

func similarityEdges(g *types.Graph) []*types.Edge {
	var out []*types.Edge
	for _, e := range g.Edges() {
		if e.Kind == types.EdgeKindSimilarity {
			out = append(out, e)
		}
	}
	return out
}

func TestInferSimilaritySharedKeyword(t *testing.T) {
	g := InferSimilarity(Assemble(scenarioStudies()))

	edges := similarityEdges(g)
	require.Len(t, edges, 1)

	e := edges[0]
	// Canonical direction: lexicographically smaller organism id first.
	assert.Equal(t, "org_arabidopsis_thaliana", e.Source)
	assert.Equal(t, "org_mus_musculus", e.Target)
	assert.Equal(t, "similar_org_arabidopsis_thaliana_org_mus_musculus", e.ID)
	assert.Equal(t, RelationSimilarTo, e.Label)
	assert.Equal(t, "similarity", e.Type)
	assert.Equal(t, "dashed", e.Style)
}

func TestInferSimilarityOrganismsOnly(t *testing.T) {
	// Organism-only inference: keyword nodes sharing an experiment must
	// never be linked, only organism pairs.
	g := InferSimilarity(Assemble(scenarioStudies()))

	for _, e := range similarityEdges(g) {
		src, ok := g.Node(e.Source)
		require.True(t, ok)
		tgt, ok := g.Node(e.Target)
		require.True(t, ok)
		assert.Equal(t, types.NodeOrganism, src.Type)
		assert.Equal(t, types.NodeOrganism, tgt.Type)
	}
}

func TestInferSimilarityIdempotent(t *testing.T) {
	g := Assemble(scenarioStudies())

	InferSimilarity(g)
	once := g.EdgeCount()
	InferSimilarity(g)

	assert.Equal(t, once, g.EdgeCount())
}

func TestInferSimilarityNoSharedKeyword(t *testing.T) {
	g := InferSimilarity(Assemble([]types.Study{
		{ID: "A", Title: "Study A", Organism: "Mus musculus", Keywords: []string{"bone density"}},
		{ID: "B", Title: "Study B", Organism: "Homo sapiens", Keywords: []string{"radiation"}},
	}))

	assert.Empty(t, similarityEdges(g))
}

func TestInferSimilarityThreeOrganisms(t *testing.T) {
	// a shares with b, b shares with c, a and c share nothing.
	g := InferSimilarity(Assemble([]types.Study{
		{ID: "A", Title: "Study A", Organism: "Alpha", Keywords: []string{"one"}},
		{ID: "B", Title: "Study B", Organism: "Beta", Keywords: []string{"one", "two"}},
		{ID: "C", Title: "Study C", Organism: "Gamma", Keywords: []string{"two"}},
	}))

	edges := similarityEdges(g)
	require.Len(t, edges, 2)
	assert.True(t, g.HasEdge("similar_org_alpha_org_beta"))
	assert.True(t, g.HasEdge("similar_org_beta_org_gamma"))
	assert.False(t, g.HasEdge("similar_org_alpha_org_gamma"))
}

func TestInferSimilarityOrderIndependent(t *testing.T) {
	studies := scenarioStudies()
	forward := InferSimilarity(Assemble(studies))
	reversed := InferSimilarity(Assemble([]types.Study{studies[1], studies[0]}))

	fe := similarityEdges(forward)
	re := similarityEdges(reversed)
	require.Len(t, fe, 1)
	require.Len(t, re, 1)
	assert.Equal(t, fe[0].ID, re[0].ID)
}
