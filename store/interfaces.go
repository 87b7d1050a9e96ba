package store

import (
	"context"

	"github.com/campusworks/clubagent/core"
)

// Passage is one text chunk in the semantic store, with its embedding vector.
type Passage struct {
	Id     core.ID
	Text   string
	Vector []float32
}

// EvidenceStore is the retrieval boundary of the pipeline: one structured
// query operation and two passage search operations. Implementations must be
// thread-safe; the two search operations are issued concurrently by the
// hybrid retrieval engine and must not poison each other on failure.
type EvidenceStore interface {
	// ExecuteStructured runs one read-intent SQL statement against the events
	// table. It never returns an error: execution failures are folded into
	// the error-sentinel row and empty result sets into the no-results
	// sentinel, so the caller always receives downstream-safe rows.
	// Read-only enforcement is this adapter's responsibility, not the query
	// generator's.
	ExecuteStructured(ctx context.Context, queryText string) core.Rows

	// SimilaritySearch returns up to topK passages by embedding similarity,
	// best match first.
	SimilaritySearch(ctx context.Context, phrase string, topK int) ([]core.ScoredPassage, error)

	// LexicalSearch returns up to topK passages by full-text relevance,
	// best match first.
	LexicalSearch(ctx context.Context, phrase string, topK int) ([]core.ScoredPassage, error)
}

// Writer is the ingest-side boundary for loading the event dataset.
type Writer interface {
	// AddEvents inserts or replaces event records.
	AddEvents(ctx context.Context, events ...*core.Event) error

	// AddPassages inserts passages with their embeddings. Passages whose
	// content ID already exists are skipped, making re-ingestion idempotent.
	AddPassages(ctx context.Context, passages ...*Passage) error
}
