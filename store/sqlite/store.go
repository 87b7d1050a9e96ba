// Copyright 2025 Campusworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/campusworks/clubagent/ai"
	"github.com/campusworks/clubagent/core"
	"github.com/campusworks/clubagent/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	event_id             TEXT PRIMARY KEY,
	name_of_event        TEXT,
	club_name            TEXT,
	event_domain         TEXT,
	date_of_event        TEXT,
	time_of_event        TEXT,
	faculty_coordinators TEXT,
	student_coordinators TEXT,
	venue                TEXT,
	mode_of_event        TEXT,
	registration_fee     TEXT,
	speakers             TEXT,
	perks                TEXT
);

CREATE TABLE IF NOT EXISTS chunks (
	id     INTEGER PRIMARY KEY,
	text   TEXT NOT NULL,
	vector BLOB NOT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(text, content='chunks', content_rowid='id');

CREATE TRIGGER IF NOT EXISTS chunks_after_insert AFTER INSERT ON chunks BEGIN
	INSERT INTO chunks_fts(rowid, text) VALUES (new.id, new.text);
END;

CREATE TRIGGER IF NOT EXISTS chunks_after_delete AFTER DELETE ON chunks BEGIN
	INSERT INTO chunks_fts(chunks_fts, rowid, text) VALUES ('delete', old.id, old.text);
END;
`

// Store is the SQLite-backed evidence store: the events table serves the
// structured path, the chunks table (embedding BLOBs) serves the vector path,
// and an FTS5 index over chunk text serves the lexical path.
type Store struct {
	db       *sql.DB
	embedder ai.Embedder
	logger   *slog.Logger
}

var (
	_ store.EvidenceStore = (*Store)(nil)
	_ store.Writer        = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// Open creates or opens the evidence database at path and runs the schema.
// Pass ":memory:" for an ephemeral store in tests. The embedder is used to
// vectorize search phrases for the similarity path.
func Open(path string, embedder ai.Embedder, opts ...Option) (*Store, error) {
	if embedder == nil {
		return nil, store.ErrEmbedderRequired
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps :memory: databases coherent and serializes
	// writers; the workload is one question at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	s := &Store{
		db:       db,
		embedder: embedder,
		logger:   slog.Default().With("component", "sqlite-store"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ExecuteStructured runs one read-only SQL statement and folds every failure
// mode into the sentinel rows the formatter understands. It never returns an
// error to the caller.
func (s *Store) ExecuteStructured(ctx context.Context, queryText string) core.Rows {
	s.logger.Debug("executing structured query", "query", queryText)

	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return core.ErrorRows(store.ErrEmptyQuery.Error())
	}

	if err := checkReadOnly(queryText); err != nil {
		s.logger.Warn("structured query rejected by read-only policy", "query", queryText)
		return core.ErrorRows(err.Error())
	}

	// The classifier writes PostgreSQL-flavored filters; translate the
	// common ones so generated queries execute against SQLite.
	queryText = translateDialect(queryText)

	rows, err := s.db.QueryContext(ctx, queryText)
	if err != nil {
		s.logger.Warn("structured query failed", "err", err)
		return core.ErrorRows(err.Error())
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return core.ErrorRows(err.Error())
	}

	var results core.Rows
	for rows.Next() {
		values := make([]any, len(cols))
		scanTargets := make([]any, len(cols))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return core.ErrorRows(err.Error())
		}

		row := make(core.Row, len(values))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[i] = v
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return core.ErrorRows(err.Error())
	}

	if len(results) == 0 {
		return core.NoResultsRows()
	}

	s.logger.Debug("structured query returned rows", "count", len(results))
	return results
}

// SimilaritySearch embeds the phrase and ranks all stored chunks by cosine
// similarity, best first. The scan is brute-force; the dataset is a few
// hundred passages at most.
func (s *Store) SimilaritySearch(ctx context.Context, phrase string, topK int) ([]core.ScoredPassage, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, store.ErrEmptyQuery
	}
	if topK <= 0 {
		return nil, nil
	}

	queryVector, err := s.embedder.EmbedText(ctx, phrase)
	if err != nil {
		return nil, fmt.Errorf("embedding search phrase: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT text, vector FROM chunks`)
	if err != nil {
		return nil, fmt.Errorf("scanning chunks: %w", err)
	}
	defer rows.Close()

	var matches []core.ScoredPassage
	for rows.Next() {
		var text string
		var blob []byte
		if err := rows.Scan(&text, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}

		vector := decodeVector(blob)
		if len(vector) == 0 {
			continue
		}

		matches = append(matches, core.ScoredPassage{
			Text:   text,
			Score:  cosineSimilarity(queryVector, vector),
			Source: core.SourceVector,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}

	s.logger.Debug("similarity search finished", "phrase", phrase, "hits", len(matches))
	return matches, nil
}

// LexicalSearch runs an FTS5 full-text query over chunk text, ranked by
// bm25, best first. It exists to catch exact-term matches (acronyms, names)
// the embedding model might under-rank.
func (s *Store) LexicalSearch(ctx context.Context, phrase string, topK int) ([]core.ScoredPassage, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, store.ErrEmptyQuery
	}
	if topK <= 0 {
		return nil, nil
	}

	match := ftsMatchExpression(phrase)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.text, bm25(chunks_fts) AS rank
		FROM chunks_fts
		JOIN chunks c ON c.id = chunks_fts.rowid
		WHERE chunks_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, match, topK)
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	defer rows.Close()

	var matches []core.ScoredPassage
	for rows.Next() {
		var text string
		var rank float64
		if err := rows.Scan(&text, &rank); err != nil {
			return nil, fmt.Errorf("scanning fts row: %w", err)
		}
		// bm25() is smaller-is-better; negate so higher means more relevant.
		matches = append(matches, core.ScoredPassage{
			Text:   text,
			Score:  -rank,
			Source: core.SourceLexical,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("lexical search finished", "phrase", phrase, "hits", len(matches))
	return matches, nil
}

// AddEvents inserts or replaces event records.
func (s *Store) AddEvents(ctx context.Context, events ...*core.Event) error {
	for _, event := range events {
		if err := core.ValidateEvent(event); err != nil {
			return err
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO events (
				event_id, name_of_event, club_name, event_domain, date_of_event,
				time_of_event, faculty_coordinators, student_coordinators, venue,
				mode_of_event, registration_fee, speakers, perks
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			event.EventID, event.Name, event.ClubName, event.Domain, event.Date,
			event.Time, event.FacultyCoordinators, event.StudentCoordinators,
			event.Venue, event.Mode, event.RegistrationFee, event.Speakers, event.Perks,
		)
		if err != nil {
			return fmt.Errorf("inserting event %q: %w", event.EventID, err)
		}
	}
	return nil
}

// AddPassages inserts passages with their embeddings. Passages whose content
// ID already exists are skipped, so re-ingesting the same dataset is
// idempotent.
func (s *Store) AddPassages(ctx context.Context, passages ...*store.Passage) error {
	for _, passage := range passages {
		if passage.Text == "" {
			continue
		}

		id := passage.Id
		if id == 0 {
			id = core.IDFromContent(passage.Text)
		}

		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO chunks (id, text, vector) VALUES (?, ?, ?)`,
			int64(id), passage.Text, encodeVector(passage.Vector),
		)
		if err != nil {
			return fmt.Errorf("inserting passage %d: %w", id, err)
		}
	}
	return nil
}

// ftsMatchExpression turns a free-form phrase into a quoted FTS5 OR-query so
// user punctuation never reaches the FTS5 query parser.
func ftsMatchExpression(phrase string) string {
	var terms []string
	for _, field := range strings.Fields(phrase) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !isAlphanumeric(r)
		})
		if word == "" {
			continue
		}
		terms = append(terms, `"`+word+`"`)
	}
	return strings.Join(terms, " OR ")
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
