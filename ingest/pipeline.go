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


package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/campusworks/clubagent/ai"
	"github.com/campusworks/clubagent/core"
	"github.com/campusworks/clubagent/store"
)

// Pipeline loads the event dataset into the evidence store: event rows first,
// then embedded passage chunks. Embedding batches run on a worker pool, one
// task per event, since the embedding service is the slow part.
type Pipeline struct {
	writer   store.Writer
	embedder ai.Embedder
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(writer store.Writer, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if writer == nil {
		return nil, ErrWriterRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		writer:   writer,
		embedder: embedder,
		pool:     pool,
		logger:   slog.Default().With("component", "ingest"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run ingests the events and their semantic chunks. It blocks until every
// embedding task finishes and returns the first error encountered; content-ID
// dedup in the writer makes re-running after a partial failure safe.
func (p *Pipeline) Run(ctx context.Context, events []*core.Event) error {
	if len(events) == 0 {
		return nil
	}

	if err := p.writer.AddEvents(ctx, events...); err != nil {
		return err
	}
	p.logger.Info("event rows ingested", "events", len(events))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, event := range events {
		texts := passagesFromEvent(event)
		if len(texts) == 0 {
			continue
		}

		eventID := event.EventID
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.embedAndStore(ctx, texts); err != nil {
				p.logger.Error("error ingesting passages", "event", eventID, "err", err)
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
		}
	}
	wg.Wait()

	return firstErr
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// embedAndStore embeds one event's chunks as a batch and writes them.
func (p *Pipeline) embedAndStore(ctx context.Context, texts []string) error {
	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(texts), len(vectors))
	}

	passages := make([]*store.Passage, len(texts))
	for i, text := range texts {
		passages[i] = &store.Passage{
			Id:     core.IDFromContent(text),
			Text:   text,
			Vector: vectors[i],
		}
	}
	return p.writer.AddPassages(ctx, passages...)
}
