package summarize

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/nullspace/nullspace/pkg/types"
	"github.com/panjf2000/ants/v2"
)

// Enricher fills in missing study summaries concurrently through a
// worker pool. Studies that already carry a summary are left alone.
type Enricher struct {
	summarizer Summarizer
	pool       *ants.Pool
	logger     *slog.Logger
}

// NewEnricher creates an enricher with the given pool size. A size
// below 1 falls back to half the CPU count.
func NewEnricher(summarizer Summarizer, workers int, logger *slog.Logger) (*Enricher, error) {
	if workers < 1 {
		workers = runtime.NumCPU() / 2
		if workers < 1 {
			workers = 1
		}
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Enricher{summarizer: summarizer, pool: pool, logger: logger}, nil
}

// Enrich summarizes every study missing a summary, in place. A failed
// summary leaves that study untouched; the batch never fails.
func (e *Enricher) Enrich(ctx context.Context, studies []types.Study) {
	var wg sync.WaitGroup
	for i := range studies {
		if studies[i].Summary != "" {
			continue
		}
		i := i
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			summary, err := e.summarizer.Summarize(ctx, studies[i])
			if err != nil {
				e.logger.Warn("summary generation failed", "id", studies[i].ID, "error", err)
				return
			}
			studies[i].Summary = summary
		})
		if err != nil {
			// Pool rejected the task, run inline so the study is not
			// silently skipped.
			wg.Done()
			if summary, serr := e.summarizer.Summarize(ctx, studies[i]); serr == nil {
				studies[i].Summary = summary
			}
		}
	}
	wg.Wait()
}

// Release shuts down the worker pool.
func (e *Enricher) Release() {
	e.pool.Release()
}
