package summarize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nullspace/nullspace/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestSummaryTextPromptBudget(t *testing.T) {
	s := types.Study{
		Title:       "Long Study",
		Description: strings.Repeat("microgravity ", 200),
		Organism:    "Mus musculus",
	}

	got := summaryText(s)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), promptTextLimit)
}

func TestSummaryTextMultibyteSafe(t *testing.T) {
	// Rune-based truncation must not split a multi-byte character at
	// the prompt budget boundary.
	s := types.Study{
		Title:       "Unicode Study",
		Description: strings.Repeat("µβΩ", 500),
	}

	got := summaryText(s)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, promptTextLimit, utf8.RuneCountInString(got))
}

func TestKeywordTextJoinsFields(t *testing.T) {
	s := types.Study{
		Title:    "Muscle Atrophy",
		Organism: "Mus musculus",
		Mission:  "Rodent Research-1",
	}
	got := keywordText(s)
	assert.Contains(t, got, "Muscle Atrophy")
	assert.Contains(t, got, "Mus musculus")
	assert.Contains(t, got, "Rodent Research-1")
}
