package source

import (
	"context"
	"log/slog"

	"github.com/nullspace/nullspace/pkg/types"
)

// FallbackSource tries the primary source and degrades to the
// secondary on any error. The caller only sees an error when both
// sources fail.
type FallbackSource struct {
	primary   Source
	secondary Source
	logger    *slog.Logger
}

// NewFallbackSource creates a fallback source decorator
func NewFallbackSource(primary, secondary Source, logger *slog.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, secondary: secondary, logger: logger}
}

// Studies implements Source
func (f *FallbackSource) Studies(ctx context.Context) ([]types.Study, error) {
	studies, err := f.primary.Studies(ctx)
	if err == nil {
		return studies, nil
	}
	f.logger.Warn("primary source failed, using fallback catalog", "error", err)
	return f.secondary.Studies(ctx)
}

// Study implements Source
func (f *FallbackSource) Study(ctx context.Context, id string) (types.Study, error) {
	study, err := f.primary.Study(ctx, id)
	if err == nil {
		return study, nil
	}
	f.logger.Warn("primary source failed, using fallback catalog", "id", id, "error", err)
	return f.secondary.Study(ctx, id)
}

// Search implements Source
func (f *FallbackSource) Search(ctx context.Context, query string, limit int) ([]types.Study, error) {
	studies, err := f.primary.Search(ctx, query, limit)
	if err == nil {
		return studies, nil
	}
	f.logger.Warn("primary source failed, using fallback catalog", "query", query, "error", err)
	return f.secondary.Search(ctx, query, limit)
}

// Close implements Source
func (f *FallbackSource) Close() error {
	err := f.primary.Close()
	if serr := f.secondary.Close(); serr != nil && err == nil {
		err = serr
	}
	return err
}
