package nullspace

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/nullspace/nullspace/pkg/graph"
	"github.com/nullspace/nullspace/pkg/rank"
	"github.com/nullspace/nullspace/pkg/source"
	"github.com/nullspace/nullspace/pkg/summarize"
	"github.com/nullspace/nullspace/pkg/types"
)

const (
	defaultRelatedLimit = 5
	defaultSearchLimit  = 20
	defaultGraphLimit   = 10
)

// StudyFilter narrows a catalog listing.
type StudyFilter struct {
	// Search keeps studies whose text contains the term.
	Search string
	// Organism keeps studies whose organism contains the term.
	Organism string
	// Limit caps the result count. Zero or less means no cap.
	Limit int
}

// StudyDetail is one study with its related studies attached.
type StudyDetail struct {
	types.Study
	Related []types.ScoredStudy `json:"related_experiments"`
}

// Explorer is the main interface for exploring the study catalog.
type Explorer interface {
	// Studies lists catalog records, filtered and with summaries
	// filled in.
	Studies(ctx context.Context, filter StudyFilter) ([]types.Study, error)

	// Study retrieves one record with its related studies, or
	// types.ErrStudyNotFound.
	Study(ctx context.Context, id string) (*StudyDetail, error)

	// KnowledgeGraph assembles the entity graph over the given study
	// ids, or over the top catalog records when ids is empty. The
	// result always renders; an empty batch degrades to a small fixed
	// graph.
	KnowledgeGraph(ctx context.Context, ids []string) (*types.Graph, error)

	// Search ranks catalog records against a free-text query.
	Search(ctx context.Context, query string, limit int) ([]types.ScoredStudy, error)

	// Stats summarizes the catalog.
	Stats(ctx context.Context) (*types.PlatformStats, error)

	// Close releases all resources.
	Close() error
}

// Options configures a Client.
type Options struct {
	// RelatedLimit caps related studies per detail lookup.
	RelatedLimit int
	// GraphLimit caps the study batch behind an unscoped graph request.
	GraphLimit int
	// Logger receives client logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Enricher fills missing summaries concurrently. Optional; when
	// nil, summaries are generated inline.
	Enricher *summarize.Enricher
}

// DefaultOptions returns the default client options.
func DefaultOptions() Options {
	return Options{
		RelatedLimit: defaultRelatedLimit,
		GraphLimit:   defaultGraphLimit,
	}
}

// Client is the main implementation of the Explorer interface.
type Client struct {
	source     source.Source
	summarizer summarize.Summarizer
	enricher   *summarize.Enricher
	opts       Options
	logger     *slog.Logger
}

var _ Explorer = (*Client)(nil)

// NewClient creates an Explorer over the given source and summarizer.
func NewClient(src source.Source, summarizer summarize.Summarizer, opts Options) (*Client, error) {
	if src == nil {
		return nil, fmt.Errorf("source is required")
	}
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer is required")
	}
	if opts.RelatedLimit <= 0 {
		opts.RelatedLimit = defaultRelatedLimit
	}
	if opts.GraphLimit <= 0 {
		opts.GraphLimit = defaultGraphLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		source:     src,
		summarizer: summarizer,
		enricher:   opts.Enricher,
		opts:       opts,
		logger:     logger,
	}, nil
}

// Studies implements Explorer.
func (c *Client) Studies(ctx context.Context, filter StudyFilter) ([]types.Study, error) {
	studies, err := c.source.Studies(ctx)
	if err != nil {
		return nil, err
	}

	studies = rank.Filter(studies, filter.Search)
	if filter.Organism != "" {
		organism := strings.ToLower(filter.Organism)
		kept := studies[:0]
		for _, s := range studies {
			if strings.Contains(strings.ToLower(s.Organism), organism) {
				kept = append(kept, s)
			}
		}
		studies = kept
	}
	if filter.Limit > 0 && len(studies) > filter.Limit {
		studies = studies[:filter.Limit]
	}

	c.fillSummaries(ctx, studies)
	return studies, nil
}

// Study implements Explorer.
func (c *Client) Study(ctx context.Context, id string) (*StudyDetail, error) {
	study, err := c.source.Study(ctx, id)
	if err != nil {
		return nil, err
	}
	c.fillStudy(ctx, &study)

	detail := &StudyDetail{Study: study, Related: []types.ScoredStudy{}}

	// Related lookup is best effort; a failing catalog listing does
	// not fail the detail request.
	all, err := c.source.Studies(ctx)
	if err != nil {
		c.logger.Warn("related lookup skipped", "id", id, "error", err)
		return detail, nil
	}
	detail.Related = rank.Related(study, all, c.opts.RelatedLimit)
	return detail, nil
}

// KnowledgeGraph implements Explorer.
func (c *Client) KnowledgeGraph(ctx context.Context, ids []string) (*types.Graph, error) {
	studies, err := c.resolveGraphBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	g := graph.InferSimilarity(graph.Assemble(studies))
	if g.NodeCount() == 0 {
		c.logger.Warn("empty study batch, serving fallback graph", "requested", len(ids))
		return graph.Fallback(), nil
	}
	return graph.Attach(g), nil
}

// Search implements Explorer.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]types.ScoredStudy, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	studies, err := c.source.Studies(ctx)
	if err != nil {
		return nil, err
	}

	scored := rank.SearchAll(query, studies, limit)

	// Second pass rescoring over the descriptive fields, then reorder.
	for i := range scored {
		c.fillStudy(ctx, &scored[i].Study)
		scored[i].Score = rank.Relevance(query, scored[i].Study)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

// Stats implements Explorer.
func (c *Client) Stats(ctx context.Context) (*types.PlatformStats, error) {
	studies, err := c.source.Studies(ctx)
	if err != nil {
		return nil, err
	}

	organisms := make(map[string]struct{})
	missions := make(map[string]struct{})
	keywords := 0
	for _, s := range studies {
		organisms[s.Organism] = struct{}{}
		missions[s.Mission] = struct{}{}
		keywords += len(s.Keywords)
	}

	return &types.PlatformStats{
		TotalExperiments: len(studies),
		OrganismsStudied: len(organisms),
		MissionsCovered:  len(missions),
		KeywordsIndexed:  keywords,
		LastUpdated:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Close implements Explorer.
func (c *Client) Close() error {
	if c.enricher != nil {
		c.enricher.Release()
	}
	err := c.summarizer.Close()
	if serr := c.source.Close(); serr != nil && err == nil {
		err = serr
	}
	return err
}

// resolveGraphBatch loads the studies behind a graph request. Unknown
// ids are skipped, not failed; the fallback graph covers the case
// where nothing resolves.
func (c *Client) resolveGraphBatch(ctx context.Context, ids []string) ([]types.Study, error) {
	if len(ids) == 0 {
		studies, err := c.source.Studies(ctx)
		if err != nil {
			return nil, err
		}
		if len(studies) > c.opts.GraphLimit {
			studies = studies[:c.opts.GraphLimit]
		}
		return studies, nil
	}

	studies := make([]types.Study, 0, len(ids))
	for _, id := range ids {
		study, err := c.source.Study(ctx, id)
		if err != nil {
			c.logger.Warn("study not resolved for graph", "id", id, "error", err)
			continue
		}
		studies = append(studies, study)
	}
	return studies, nil
}

// fillSummaries fills missing summaries for a batch, through the
// worker pool when one is configured.
func (c *Client) fillSummaries(ctx context.Context, studies []types.Study) {
	if c.enricher != nil {
		c.enricher.Enrich(ctx, studies)
		return
	}
	for i := range studies {
		c.fillStudy(ctx, &studies[i])
	}
}

// fillStudy fills a missing summary and keyword set on one study.
func (c *Client) fillStudy(ctx context.Context, s *types.Study) {
	if s.Summary == "" {
		summary, err := c.summarizer.Summarize(ctx, *s)
		if err != nil {
			c.logger.Warn("summary generation failed", "id", s.ID, "error", err)
		} else {
			s.Summary = summary
		}
	}
	if len(s.Keywords) == 0 {
		keywords, err := c.summarizer.Keywords(ctx, *s)
		if err != nil {
			c.logger.Warn("keyword generation failed", "id", s.ID, "error", err)
		} else {
			s.Keywords = keywords
		}
	}
}
