package summarize

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/nullspace/nullspace/pkg/types"
)

// Static produces deterministic template summaries and keywords with
// no model behind it. The same study id always selects the same
// template.
type Static struct{}

// NewStatic creates a static summarizer.
func NewStatic() *Static { return &Static{} }

var summaryTemplates = []func(organism, mission string) string{
	func(organism, mission string) string {
		return "This study investigates the effects of spaceflight conditions on " + organism + " during the " + mission + "."
	},
	func(organism, mission string) string {
		return "Research examining how microgravity environment affects " + organism + " biological processes."
	},
	func(organism, mission string) string {
		return "Comprehensive analysis of " + organism + " responses to space environment conditions during " + mission + "."
	},
	func(organism, mission string) string {
		return "Investigation of molecular and cellular changes in " + organism + " under spaceflight conditions."
	},
}

// Summarize implements Summarizer.
func (s *Static) Summarize(ctx context.Context, study types.Study) (string, error) {
	organism := study.Organism
	if organism == "" {
		organism = "biological samples"
	}
	mission := study.Mission
	if mission == "" {
		mission = "space mission"
	}

	h := fnv.New32a()
	h.Write([]byte(study.ID))
	tmpl := summaryTemplates[h.Sum32()%uint32(len(summaryTemplates))]
	return tmpl(organism, mission), nil
}

// Keywords implements Summarizer.
func (s *Static) Keywords(ctx context.Context, study types.Study) ([]string, error) {
	keywords := []string{"spaceflight", "microgravity", "gene expression", "space biology"}
	if study.Organism != "" {
		keywords = append(keywords, strings.ToLower(study.Organism))
	}
	if study.Mission != "" {
		keywords = append(keywords, study.Mission)
	}
	if len(keywords) > 6 {
		keywords = keywords[:6]
	}
	return keywords, nil
}

// Close implements Summarizer.
func (s *Static) Close() error { return nil }
