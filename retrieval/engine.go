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


package retrieval

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/campusworks/clubagent/core"
	"github.com/campusworks/clubagent/store"
)

const (
	// DefaultTopK is how many hits each search path contributes before fusion.
	DefaultTopK = 5

	// DefaultFusedLimit caps the fused result list handed to the synthesizer.
	DefaultFusedLimit = 10
)

// NoDocumentsMessage is the sentinel returned when neither search path finds
// anything. It flows into the synthesis context as-is; the answer model is
// instructed to phrase an "I don't know" from it.
const NoDocumentsMessage = "No relevant documents found."

// Searcher is the slice of the evidence store the engine needs.
type Searcher interface {
	SimilaritySearch(ctx context.Context, phrase string, topK int) ([]core.ScoredPassage, error)
	LexicalSearch(ctx context.Context, phrase string, topK int) ([]core.ScoredPassage, error)
}

// Engine runs both search paths concurrently and fuses their results by
// rank. A failure on one path degrades to the other's results alone instead
// of failing the question.
type Engine struct {
	searcher   Searcher
	topK       int
	fusedLimit int
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopK sets how many hits each search path contributes.
// Default is DefaultTopK.
func WithTopK(topK int) Option {
	return func(e *Engine) {
		if topK > 0 {
			e.topK = topK
		}
	}
}

// WithFusedLimit caps the fused result list.
// Default is DefaultFusedLimit.
func WithFusedLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.fusedLimit = limit
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewEngine creates a hybrid retrieval engine over a searcher.
func NewEngine(searcher Searcher, opts ...Option) *Engine {
	e := &Engine{
		searcher:   searcher,
		topK:       DefaultTopK,
		fusedLimit: DefaultFusedLimit,
		logger:     slog.Default().With("component", "retrieval"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Retrieve answers a semantic search phrase with fused passage texts, best
// first. Both paths run concurrently; when one fails the other's results
// still count, and when nothing at all is found the no-documents sentinel is
// returned so the caller always has context to synthesize from.
func (e *Engine) Retrieve(ctx context.Context, phrase string) ([]string, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, store.ErrEmptyQuery
	}

	var (
		wg         sync.WaitGroup
		vector     []core.ScoredPassage
		lexical    []core.ScoredPassage
		vectorErr  error
		lexicalErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		vector, vectorErr = e.searcher.SimilaritySearch(ctx, phrase, e.topK)
	}()
	go func() {
		defer wg.Done()
		lexical, lexicalErr = e.searcher.LexicalSearch(ctx, phrase, e.topK)
	}()
	wg.Wait()

	if vectorErr != nil {
		e.logger.Warn("vector search failed, continuing with lexical results only",
			"phrase", phrase, "err", vectorErr)
		vector = nil
	}
	if lexicalErr != nil {
		e.logger.Warn("lexical search failed, continuing with vector results only",
			"phrase", phrase, "err", lexicalErr)
		lexical = nil
	}

	fused := fuseByRank(vector, lexical, e.topK)
	if len(fused) > e.fusedLimit {
		fused = fused[:e.fusedLimit]
	}

	e.logger.Debug("hybrid search fused",
		"phrase", phrase,
		"vector_hits", len(vector),
		"lexical_hits", len(lexical),
		"fused", len(fused))

	if len(fused) == 0 {
		return []string{NoDocumentsMessage}, nil
	}
	return fused, nil
}
