package nullspace

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/nullspace/nullspace/pkg/source"
	"github.com/nullspace/nullspace/pkg/summarize"
	"github.com/nullspace/nullspace/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	catalog, err := source.NewLocal()
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := NewClient(catalog, summarize.NewStatic(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClientStudies(t *testing.T) {
	client := newTestClient(t)

	studies, err := client.Studies(context.Background(), StudyFilter{})
	require.NoError(t, err)
	assert.Len(t, studies, 8)
	for _, s := range studies {
		assert.NotEmpty(t, s.Summary, "study %s missing summary", s.ID)
	}
}

func TestClientStudiesFiltered(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	bySearch, err := client.Studies(ctx, StudyFilter{Search: "yeast"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "GLDS-418", bySearch[0].ID)

	byOrganism, err := client.Studies(ctx, StudyFilter{Organism: "homo"})
	require.NoError(t, err)
	assert.Len(t, byOrganism, 2)

	limited, err := client.Studies(ctx, StudyFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestClientStudyDetail(t *testing.T) {
	client := newTestClient(t)

	detail, err := client.Study(context.Background(), "GLDS-47")
	require.NoError(t, err)
	assert.Equal(t, "Mus musculus", detail.Organism)
	assert.NotEmpty(t, detail.Related)
	for _, r := range detail.Related {
		assert.NotEqual(t, "GLDS-47", r.ID)
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestClientStudyNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Study(context.Background(), "GLDS-9999")
	assert.ErrorIs(t, err, types.ErrStudyNotFound)
}

func TestClientKnowledgeGraph(t *testing.T) {
	client := newTestClient(t)

	g, err := client.KnowledgeGraph(context.Background(), []string{"GLDS-47", "GLDS-21"})
	require.NoError(t, err)

	assert.Greater(t, g.NodeCount(), 2)
	assert.Equal(t, "cose", g.Layout.Name)
	_, ok := g.Node("org_mus_musculus")
	assert.True(t, ok)
	_, ok = g.Node("org_arabidopsis_thaliana")
	assert.True(t, ok)
	// Both studies carry the microgravity keyword, so their organisms
	// get a derived similarity edge.
	assert.True(t, g.HasEdge("similar_org_arabidopsis_thaliana_org_mus_musculus"))
}

func TestClientKnowledgeGraphUnscoped(t *testing.T) {
	client := newTestClient(t)

	g, err := client.KnowledgeGraph(context.Background(), nil)
	require.NoError(t, err)
	assert.Greater(t, g.NodeCount(), 8)
}

func TestClientKnowledgeGraphFallback(t *testing.T) {
	client := newTestClient(t)

	// No id resolves, the caller still gets a renderable graph.
	g, err := client.KnowledgeGraph(context.Background(), []string{"GLDS-9999"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, g.NodeCount(), 1)
	require.GreaterOrEqual(t, g.EdgeCount(), 1)
	assert.Equal(t, "circle", g.Layout.Name)
}

func TestClientSearch(t *testing.T) {
	client := newTestClient(t)

	results, err := client.Search(context.Background(), "microgravity muscle", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "GLDS-47", results[0].ID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestClientSearchNoMatch(t *testing.T) {
	client := newTestClient(t)

	results, err := client.Search(context.Background(), "zebrafish swimming", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClientStats(t *testing.T) {
	client := newTestClient(t)

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, stats.TotalExperiments)
	assert.Equal(t, 7, stats.OrganismsStudied)
	assert.Equal(t, 8, stats.MissionsCovered)
	assert.Equal(t, 40, stats.KeywordsIndexed)
	assert.NotEmpty(t, stats.LastUpdated)
}
