package source

import (
	"context"

	"github.com/nullspace/nullspace/pkg/types"
)

// Source is a catalog of normalized study records.
type Source interface {
	// Studies returns the catalog's study records, up to the source's
	// configured limit.
	Studies(ctx context.Context) ([]types.Study, error)

	// Study returns the record with the given id, or
	// types.ErrStudyNotFound.
	Study(ctx context.Context, id string) (types.Study, error)

	// Search returns records matching the free-text query.
	Search(ctx context.Context, query string, limit int) ([]types.Study, error)

	// Close releases any resources held by the source.
	Close() error
}
