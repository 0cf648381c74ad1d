// Package dto defines the wire shapes of the HTTP API.
package dto

import "github.com/nullspace/nullspace/pkg/types"

// ExperimentsResponse wraps a study listing.
type ExperimentsResponse struct {
	Experiments []types.Study `json:"experiments"`
}

// SearchResponse wraps ranked search results with the query echoed
// back.
type SearchResponse struct {
	Results []types.ScoredStudy `json:"results"`
	Query   string              `json:"query"`
}

// RootResponse is the service banner served at /.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
