// Package rank scores and orders studies lexically against free-text
// queries. Scoring is substring and token based, computed per request
// over the candidate slice with no persistent index.
package rank
