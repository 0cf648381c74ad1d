package summarize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nullspace/nullspace/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakySummarizer fails a fixed number of times before succeeding.
type flakySummarizer struct {
	failures int
	calls    int
	err      error
}

func (f *flakySummarizer) Summarize(ctx context.Context, study types.Study) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "ok", nil
}

func (f *flakySummarizer) Keywords(ctx context.Context, study types.Study) ([]string, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return []string{"ok"}, nil
}

func (f *flakySummarizer) Close() error { return nil }

func fastRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetrySummarizerRecovers(t *testing.T) {
	inner := &flakySummarizer{failures: 2, err: errors.New("503 service unavailable")}
	r := NewRetrySummarizer(inner, fastRetryConfig())

	summary, err := r.Summarize(context.Background(), types.Study{ID: "X"})
	require.NoError(t, err)
	assert.Equal(t, "ok", summary)
	assert.Equal(t, 3, inner.calls)
}

func TestRetrySummarizerNonRetryable(t *testing.T) {
	inner := &flakySummarizer{failures: 10, err: errors.New("invalid api key")}
	r := NewRetrySummarizer(inner, fastRetryConfig())

	_, err := r.Summarize(context.Background(), types.Study{ID: "X"})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetrySummarizerExhausted(t *testing.T) {
	inner := &flakySummarizer{failures: 10, err: errors.New("timeout")}
	r := NewRetrySummarizer(inner, fastRetryConfig())

	_, err := r.Summarize(context.Background(), types.Study{ID: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 retries")
	assert.Equal(t, 4, inner.calls)
}

func TestRetrySummarizerKeywords(t *testing.T) {
	inner := &flakySummarizer{failures: 1, err: errors.New("429 too many requests")}
	r := NewRetrySummarizer(inner, fastRetryConfig())

	keywords, err := r.Keywords(context.Background(), types.Study{ID: "X"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, keywords)
}
