package types

import "errors"

// Sentinel errors shared across packages.
var (
	ErrStudyNotFound     = errors.New("study not found")
	ErrSourceUnavailable = errors.New("record source unavailable")
)

// Context keys for request-scoped metadata propagated into telemetry.
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyRoute     contextKey = "route"
)

// Study is one normalized research-study record. It is owned by the
// caller for the duration of a single graph or ranking request and is
// never mutated by the core.
type Study struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Summary          string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty"`
	Organism         string   `json:"organism" yaml:"organism"`
	Mission          string   `json:"mission" yaml:"mission"`
	Keywords         []string `json:"keywords" yaml:"keywords"`
	DataTypes        []string `json:"dataTypes,omitempty" yaml:"data_types,omitempty"`
	PublicationCount int      `json:"publicationCount,omitempty" yaml:"publication_count,omitempty"`
	Duration         string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	ReleaseDate      string   `json:"releaseDate,omitempty" yaml:"release_date,omitempty"`
}

// ScoredStudy wraps a Study with a relevance or similarity score used
// only for ordering results. It is never persisted.
type ScoredStudy struct {
	Study
	Score float64 `json:"score"`
}

// PlatformStats summarizes the catalog served by the record source.
type PlatformStats struct {
	TotalExperiments int    `json:"total_experiments"`
	OrganismsStudied int    `json:"organisms_studied"`
	MissionsCovered  int    `json:"missions_covered"`
	KeywordsIndexed  int    `json:"keywords_indexed"`
	LastUpdated      string `json:"last_updated"`
}
