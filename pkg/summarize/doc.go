// Package summarize produces short prose summaries and keyword sets
// for study records. The OpenAI-backed summarizer is optional; the
// static summarizer serves deterministic template output when no model
// is configured or a model call fails.
package summarize
