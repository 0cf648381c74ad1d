package source

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/nullspace/nullspace/pkg/types"
)

// Wire shapes for the GeneLab search and study detail endpoints.

type searchResponse struct {
	Studies []searchHit `json:"studies"`
}

type searchHit struct {
	Accession   string `json:"accession"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Organism    string `json:"organism"`
}

type detailResponse struct {
	Study studyDetail `json:"study"`
}

type studyDetail struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Organisms      []organismRef     `json:"organisms"`
	Factors        []factorRef       `json:"factors"`
	StudyType      string            `json:"studyType"`
	Assays         []assayRef        `json:"assays"`
	Publications   []json.RawMessage `json:"publications"`
	Project        projectRef        `json:"project"`
	ReleaseDate    string            `json:"releaseDate"`
	SubmissionDate string            `json:"submissionDate"`
}

type organismRef struct {
	ScientificName string `json:"scientificName"`
}

type factorRef struct {
	FactorName  string `json:"factorName"`
	FactorValue string `json:"factorValue"`
}

type assayRef struct {
	MeasurementType string `json:"measurementType"`
}

type projectRef struct {
	Title string `json:"title"`
}

const (
	detailSummaryLimit = 500
	basicSummaryLimit  = 300
	maxKeywords        = 10
)

// spaceKeywords are domain terms scanned for in titles and
// descriptions to supplement the factor-derived keyword set.
var spaceKeywords = []string{
	"microgravity", "spaceflight", "space", "ISS", "gene expression",
	"muscle atrophy", "bone density", "cardiovascular", "radiation",
}

// normalizeDetail maps a full GeneLab study record to the normalized
// Study shape.
func normalizeDetail(accession string, d *studyDetail) types.Study {
	return types.Study{
		ID:               accession,
		Title:            orUnknown(d.Title, "Unknown Study"),
		Summary:          truncate(strings.TrimSpace(d.Description), detailSummaryLimit),
		Description:      d.Description,
		Organism:         extractOrganism(d),
		Mission:          extractMission(d),
		Keywords:         extractKeywords(d),
		DataTypes:        extractDataTypes(d),
		PublicationCount: len(d.Publications),
		Duration:         extractDuration(d),
		ReleaseDate:      d.ReleaseDate,
	}
}

// basicStudy maps a bare search hit to a Study when the detail fetch
// is unavailable.
func basicStudy(hit searchHit) types.Study {
	return types.Study{
		ID:       hit.Accession,
		Title:    orUnknown(hit.Title, "Unknown Study"),
		Summary:  truncate(strings.TrimSpace(hit.Description), basicSummaryLimit),
		Organism: orUnknown(hit.Organism, "Unknown"),
		Mission:  "NASA Mission",
		Keywords: []string{},
		Duration: "Unknown",
	}
}

func extractOrganism(d *studyDetail) string {
	if len(d.Organisms) > 0 && d.Organisms[0].ScientificName != "" {
		return d.Organisms[0].ScientificName
	}
	return "Unknown organism"
}

func extractMission(d *studyDetail) string {
	for _, f := range d.Factors {
		name := strings.ToLower(f.FactorName)
		if strings.Contains(name, "flight") || strings.Contains(name, "mission") {
			return orUnknown(f.FactorValue, "NASA Mission")
		}
	}
	if d.Project.Title != "" {
		return d.Project.Title
	}
	return "NASA Mission"
}

func extractKeywords(d *studyDetail) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0, maxKeywords)
	add := func(kw string) {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			return
		}
		if _, ok := seen[kw]; ok {
			return
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	for _, f := range d.Factors {
		add(strings.ToLower(f.FactorName))
	}
	add(strings.ToLower(d.StudyType))

	title := strings.ToLower(d.Title)
	desc := strings.ToLower(d.Description)
	for _, kw := range spaceKeywords {
		if strings.Contains(title, strings.ToLower(kw)) || strings.Contains(desc, strings.ToLower(kw)) {
			add(kw)
		}
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func extractDataTypes(d *studyDetail) []string {
	seen := make(map[string]struct{})
	for _, a := range d.Assays {
		if a.MeasurementType != "" {
			seen[a.MeasurementType] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func extractDuration(d *studyDetail) string {
	for _, f := range d.Factors {
		name := strings.ToLower(f.FactorName)
		if strings.Contains(name, "duration") || strings.Contains(name, "time") {
			return orUnknown(f.FactorValue, "Unknown")
		}
	}
	return "Unknown"
}

// truncate caps s at limit runes so multi-byte text is never split
// mid-character.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
