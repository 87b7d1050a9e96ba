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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campusworks/clubagent/core"
	"github.com/campusworks/clubagent/retrieval"
)

// Router decides the retrieval strategy for a question.
type Router interface {
	Classify(ctx context.Context, question string) (core.Intent, error)
}

// Retriever answers a semantic search phrase with fused passage texts.
type Retriever interface {
	Retrieve(ctx context.Context, phrase string) ([]string, error)
}

// StructuredExecutor runs a structured query, folding failures into sentinel
// rows.
type StructuredExecutor interface {
	ExecuteStructured(ctx context.Context, queryText string) core.Rows
}

// Answerer synthesizes the final answer from retrieved context.
type Answerer interface {
	Synthesize(ctx context.Context, question, contextText, sqlQuery string) string
}

// Pipeline wires the four stages of a question: route, retrieve, format,
// synthesize. Every question that passes validation gets an answer string;
// there is no failure mode past that point that surfaces as an error.
type Pipeline struct {
	router    Router
	executor  StructuredExecutor
	retriever Retriever
	answerer  Answerer
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// New creates a pipeline from its four stages.
func New(router Router, executor StructuredExecutor, retriever Retriever, answerer Answerer, opts ...Option) *Pipeline {
	p := &Pipeline{
		router:    router,
		executor:  executor,
		retriever: retriever,
		answerer:  answerer,
		logger:    slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HandleUserQuery runs a question end to end and always returns a
// user-facing answer string. The only error is an empty question; routing
// failures, query failures, empty retrievals, and blocked responses all
// resolve to graceful answer text instead.
func (p *Pipeline) HandleUserQuery(ctx context.Context, question string) (string, error) {
	if err := core.ValidateQuestion(question); err != nil {
		return "", err
	}

	p.logger.Info("handling question", "question", question)

	intent, err := p.router.Classify(ctx, question)
	if err != nil {
		p.logger.Error("routing failed", "err", err)
		return ParseApology, nil
	}

	var contextText, sqlQuery string
	switch intent.Kind {
	case core.IntentStructured:
		sqlQuery = intent.Query
		rows := p.executor.ExecuteStructured(ctx, intent.Query)
		contextText = "Database query returned: " + FormatRows(rows)

	case core.IntentSemantic:
		docs, err := p.retriever.Retrieve(ctx, intent.Query)
		if err != nil {
			p.logger.Warn("retrieval failed", "err", err)
			docs = []string{retrieval.NoDocumentsMessage}
		}
		contextText = strings.Join(docs, "\n")

	default:
		contextText = fmt.Sprintf("Query parser failed or returned unknown intent: %s", intent.Reason)
	}

	p.logger.Debug("retrieved context", "intent", intent.Kind.String(), "context", contextText)

	return p.answerer.Synthesize(ctx, question, contextText, sqlQuery), nil
}
