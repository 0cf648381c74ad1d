package rank

import (
	"testing"

	"github.com/nullspace/nullspace/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mouseStudy() types.Study {
	return types.Study{
		ID:          "GLDS-47",
		Title:       "Muscle Atrophy in Microgravity",
		Summary:     "Spaceflight effects on mouse skeletal muscle.",
		Description: "RNA sequencing of mouse muscle tissue after 30 days aboard the ISS.",
		Organism:    "Mus musculus",
		Mission:     "Rodent Research-1",
		Keywords:    []string{"muscle atrophy", "microgravity", "proteomics"},
	}
}

func plantStudy() types.Study {
	return types.Study{
		ID:          "GLDS-120",
		Title:       "Plant Growth in Space",
		Summary:     "Arabidopsis root development in orbit.",
		Description: "Gene expression changes in Arabidopsis thaliana seedlings.",
		Organism:    "Arabidopsis thaliana",
		Mission:     "SpaceX CRS-3",
		Keywords:    []string{"gene expression", "microgravity", "root growth"},
	}
}

func TestMatchesQuery(t *testing.T) {
	s := mouseStudy()

	assert.True(t, MatchesQuery(s, "microgravity"))
	assert.True(t, MatchesQuery(s, "MUSCLE"))
	assert.True(t, MatchesQuery(s, "mus musculus"))
	assert.True(t, MatchesQuery(s, "proteomics"))
	assert.False(t, MatchesQuery(s, "xyz"))
}

func TestMatchesQueryDescriptionOnly(t *testing.T) {
	// A term that occurs only in the full description still matches;
	// the summary is a shorter paraphrase and may omit it.
	s := types.Study{
		ID:          "GLDS-47",
		Title:       "Muscle Atrophy in Microgravity",
		Summary:     "Spaceflight effects on mouse skeletal muscle.",
		Description: "Transcriptomic analysis of signaling pathways in mouse muscle tissue.",
		Organism:    "Mus musculus",
	}
	assert.True(t, MatchesQuery(s, "pathways"))
}

func TestMatchesQuerySubstringOverMatch(t *testing.T) {
	// Matching is raw substring, not token based.
	s := types.Study{Title: "Radiation Strategy Review"}
	assert.True(t, MatchesQuery(s, "rat"))
}

func TestFilter(t *testing.T) {
	studies := []types.Study{mouseStudy(), plantStudy()}

	got := Filter(studies, "arabidopsis")
	require.Len(t, got, 1)
	assert.Equal(t, "GLDS-120", got[0].ID)

	// Empty query matches everything.
	assert.Len(t, Filter(studies, ""), 2)
	assert.Len(t, Filter(studies, "   "), 2)
	assert.Empty(t, Filter(studies, "nonexistent"))
}

func TestRelevanceBounds(t *testing.T) {
	s := mouseStudy()

	assert.Equal(t, 0.0, Relevance("", s))
	assert.Equal(t, 0.0, Relevance("   ", s))

	full := Relevance("muscle microgravity", s)
	assert.Equal(t, 1.0, full)

	half := Relevance("muscle zebrafish", s)
	assert.Equal(t, 0.5, half)

	assert.Equal(t, 0.0, Relevance("zebrafish", s))
}

func TestRelevanceDedupesTerms(t *testing.T) {
	// Repeated terms count once, so the score stays in [0, 1].
	s := mouseStudy()
	assert.Equal(t, 1.0, Relevance("muscle muscle muscle", s))
}

func TestRelevanceIgnoresKeywords(t *testing.T) {
	s := types.Study{
		ID:       "X",
		Title:    "Bone Density Study",
		Keywords: []string{"osteoporosis"},
	}
	assert.Equal(t, 0.0, Relevance("osteoporosis", s))
}

func TestSearchAll(t *testing.T) {
	studies := []types.Study{mouseStudy(), plantStudy()}

	got := SearchAll("arabidopsis root", studies, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "GLDS-120", got[0].ID)
	assert.Equal(t, 1.0, got[0].Score)

	// Keywords are searchable in the batch path.
	got = SearchAll("proteomics", studies, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "GLDS-47", got[0].ID)
}

func TestSearchAllOrderingAndLimit(t *testing.T) {
	studies := []types.Study{mouseStudy(), plantStudy()}

	got := SearchAll("microgravity muscle", studies, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "GLDS-47", got[0].ID)
	assert.Greater(t, got[0].Score, got[1].Score)

	got = SearchAll("microgravity muscle", studies, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "GLDS-47", got[0].ID)
}

func TestRelatedScore(t *testing.T) {
	base := mouseStudy()

	sibling := types.Study{
		ID:       "GLDS-48",
		Organism: "Mus musculus",
		Keywords: []string{"Microgravity", "bone density"},
	}
	// One shared keyword (case-insensitive) plus organism match.
	assert.Equal(t, 2.0, RelatedScore(base, sibling))

	stranger := types.Study{
		ID:       "GLDS-200",
		Organism: "Danio rerio",
		Keywords: []string{"swimming"},
	}
	assert.Equal(t, 0.0, RelatedScore(base, stranger))
}

func TestRelatedScoreEmptyOrganism(t *testing.T) {
	// Two studies with no organism set must not count as a match.
	a := types.Study{ID: "A", Keywords: []string{"microgravity"}}
	b := types.Study{ID: "B", Keywords: []string{"microgravity"}}
	assert.Equal(t, 1.0, RelatedScore(a, b))
}

func TestRelated(t *testing.T) {
	base := mouseStudy()
	strong := types.Study{
		ID:       "GLDS-48",
		Organism: "Mus musculus",
		Keywords: []string{"muscle atrophy", "microgravity", "proteomics"},
	}
	weak := types.Study{
		ID:       "GLDS-120",
		Organism: "Arabidopsis thaliana",
		Keywords: []string{"microgravity"},
	}
	unrelated := types.Study{
		ID:       "GLDS-300",
		Organism: "Danio rerio",
		Keywords: []string{"swimming"},
	}

	got := Related(base, []types.Study{weak, unrelated, strong, base}, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "GLDS-48", got[0].ID)
	assert.Equal(t, 4.0, got[0].Score)
	assert.Equal(t, "GLDS-120", got[1].ID)
	assert.Equal(t, 1.0, got[1].Score)
}

func TestRelatedExcludesSelfAndRespectsLimit(t *testing.T) {
	base := mouseStudy()
	other := types.Study{ID: "O1", Organism: "Mus musculus"}

	got := Related(base, []types.Study{base, other, {ID: "O2", Organism: "Mus musculus"}}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "O1", got[0].ID)
}
