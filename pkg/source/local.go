package source

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nullspace/nullspace/pkg/rank"
	"github.com/nullspace/nullspace/pkg/types"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleCatalog []byte

// Local serves the bundled study catalog. It backs the offline mode
// and the degradation path when the GeneLab API is unreachable.
type Local struct {
	studies []types.Study
	byID    map[string]int
}

type catalogFile struct {
	Studies []types.Study `yaml:"studies"`
}

// NewLocal loads the embedded catalog.
func NewLocal() (*Local, error) {
	var file catalogFile
	if err := yaml.Unmarshal(sampleCatalog, &file); err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	byID := make(map[string]int, len(file.Studies))
	for i, s := range file.Studies {
		byID[s.ID] = i
	}
	return &Local{studies: file.Studies, byID: byID}, nil
}

// Studies implements Source.
func (l *Local) Studies(ctx context.Context) ([]types.Study, error) {
	out := make([]types.Study, len(l.studies))
	copy(out, l.studies)
	return out, nil
}

// Study implements Source.
func (l *Local) Study(ctx context.Context, id string) (types.Study, error) {
	i, ok := l.byID[id]
	if !ok {
		return types.Study{}, types.ErrStudyNotFound
	}
	return l.studies[i], nil
}

// Search implements Source.
func (l *Local) Search(ctx context.Context, query string, limit int) ([]types.Study, error) {
	matched := rank.Filter(l.studies, query)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]types.Study, len(matched))
	copy(out, matched)
	return out, nil
}

// Close implements Source.
func (l *Local) Close() error { return nil }
