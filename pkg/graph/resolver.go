package graph

import (
	"regexp"
	"strings"

	"github.com/nullspace/nullspace/pkg/types"
)

// collapseRe folds runs of whitespace and hyphens into one separator so
// "Rodent Research-1" and "rodent research 1" resolve identically.
var collapseRe = regexp.MustCompile(`[\s-]+`)

var typePrefixes = map[types.NodeType]string{
	types.NodeExperiment: "exp",
	types.NodeOrganism:   "org",
	types.NodeMission:    "mission",
	types.NodeKeyword:    "kw",
}

// Resolve derives the stable node id for an entity value. The id is a
// pure function of (type, normalized label): the label is lowercased,
// trimmed, and internal whitespace/hyphens are collapsed to a single
// underscore. The id itself is the dedup key; no "already seen" set is
// needed anywhere else.
//
// An empty or blank label returns "" and the caller skips creating the
// node. That is policy for optional record fields, not an error.
func Resolve(t types.NodeType, label string) string {
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return ""
	}
	prefix, ok := typePrefixes[t]
	if !ok {
		prefix = string(t)
	}
	return prefix + "_" + normalized
}

// NormalizeLabel lowercases, trims, and collapses separators so equal
// entity values map to the same key.
func NormalizeLabel(label string) string {
	trimmed := strings.TrimSpace(strings.ToLower(label))
	if trimmed == "" {
		return ""
	}
	return collapseRe.ReplaceAllString(trimmed, "_")
}
