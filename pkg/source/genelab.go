package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nullspace/nullspace/pkg/config"
	"github.com/nullspace/nullspace/pkg/types"
)

// GeneLab fetches study records from the NASA GeneLab REST API. Each
// batch fetch issues one search request plus one detail request per
// study; studies whose detail request fails degrade to the thinner
// search-hit record instead of being dropped.
type GeneLab struct {
	searchURL string
	studyURL  string
	term      string
	limit     int
	client    *http.Client
	logger    *slog.Logger
}

// NewGeneLab creates a GeneLab source from configuration.
func NewGeneLab(cfg config.SourceConfig, logger *slog.Logger) *GeneLab {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 20
	}
	return &GeneLab{
		searchURL: cfg.SearchURL,
		studyURL:  cfg.StudyURL,
		term:      cfg.Term,
		limit:     limit,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// Studies implements Source.
func (g *GeneLab) Studies(ctx context.Context) ([]types.Study, error) {
	return g.search(ctx, g.term, g.limit)
}

// Study implements Source.
func (g *GeneLab) Study(ctx context.Context, id string) (types.Study, error) {
	detail, err := g.fetchDetail(ctx, id)
	if err != nil {
		return types.Study{}, err
	}
	if detail == nil {
		return types.Study{}, types.ErrStudyNotFound
	}
	return normalizeDetail(id, detail), nil
}

// Search implements Source.
func (g *GeneLab) Search(ctx context.Context, query string, limit int) ([]types.Study, error) {
	if limit <= 0 {
		limit = g.limit
	}
	return g.search(ctx, query, limit)
}

// Close implements Source.
func (g *GeneLab) Close() error {
	g.client.CloseIdleConnections()
	return nil
}

func (g *GeneLab) search(ctx context.Context, term string, limit int) ([]types.Study, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("size", strconv.Itoa(limit))
	params.Set("from", "0")

	var resp searchResponse
	if err := g.getJSON(ctx, g.searchURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}

	studies := make([]types.Study, 0, len(resp.Studies))
	for _, hit := range resp.Studies {
		if len(studies) >= limit {
			break
		}
		if hit.Accession == "" {
			continue
		}
		detail, err := g.fetchDetail(ctx, hit.Accession)
		if err != nil || detail == nil {
			if err != nil {
				g.logger.Warn("study detail fetch failed, using search hit",
					"accession", hit.Accession, "error", err)
			}
			studies = append(studies, basicStudy(hit))
			continue
		}
		studies = append(studies, normalizeDetail(hit.Accession, detail))
	}
	g.logger.Info("fetched studies from GeneLab", "count", len(studies), "term", term)
	return studies, nil
}

func (g *GeneLab) fetchDetail(ctx context.Context, accession string) (*studyDetail, error) {
	var resp detailResponse
	if err := g.getJSON(ctx, g.studyURL+"/"+url.PathEscape(accession), &resp); err != nil {
		return nil, err
	}
	if resp.Study.Title == "" && resp.Study.Description == "" {
		return nil, nil
	}
	return &resp.Study, nil
}

func (g *GeneLab) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
