package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/nullspace/nullspace/pkg/config"
	"github.com/nullspace/nullspace/pkg/types"
	"github.com/sony/gobreaker"
)

// BreakerSource wraps a Source with circuit breaking logic
type BreakerSource struct {
	source Source
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

// NewBreakerSource creates a circuit breaking source decorator
func NewBreakerSource(src Source, cfg config.CircuitBreakerConfig, logger *slog.Logger, name string) *BreakerSource {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerSource{
		source: src,
		cb:     gobreaker.NewCircuitBreaker(st),
		logger: logger,
	}
}

// Studies implements Source
func (b *BreakerSource) Studies(ctx context.Context) ([]types.Study, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.source.Studies(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]types.Study), nil
}

// Study implements Source
func (b *BreakerSource) Study(ctx context.Context, id string) (types.Study, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.source.Study(ctx, id)
	})
	if err != nil {
		return types.Study{}, err
	}
	return result.(types.Study), nil
}

// Search implements Source
func (b *BreakerSource) Search(ctx context.Context, query string, limit int) ([]types.Study, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.source.Search(ctx, query, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.([]types.Study), nil
}

// Close implements Source
func (b *BreakerSource) Close() error {
	return b.source.Close()
}
