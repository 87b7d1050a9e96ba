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


package clubagent

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusworks/clubagent/ai"
	"github.com/campusworks/clubagent/ai/openai"
	"github.com/campusworks/clubagent/core"
	"github.com/campusworks/clubagent/ingest"
	"github.com/campusworks/clubagent/pipeline"
	"github.com/campusworks/clubagent/retrieval"
	"github.com/campusworks/clubagent/router"
	"github.com/campusworks/clubagent/store/sqlite"
	"github.com/campusworks/clubagent/transcript"
	tbadger "github.com/campusworks/clubagent/transcript/badger"
)

// Agent ties the whole system together: the evidence store, the question
// pipeline, and the optional chat transcript.
type Agent struct {
	evidence   *sqlite.Store
	transcript transcript.Store
	provider   ai.Provider
	pipeline   *pipeline.Pipeline
	logger     *slog.Logger
}

// AgentOption configures an Agent.
type AgentOption func(*agentOptions)

type agentOptions struct {
	aiConfig      *ai.Config
	provider      ai.Provider
	retrievalOpts []retrieval.Option
}

// WithAIConfig sets the model service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) AgentOption {
	return func(o *agentOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider instead of constructing one
// from the config. Intended for tests.
func WithProvider(provider ai.Provider) AgentOption {
	return func(o *agentOptions) {
		o.provider = provider
	}
}

// WithRetrievalOptions passes options through to the hybrid retrieval
// engine, such as retrieval.WithTopK and retrieval.WithFusedLimit.
func WithRetrievalOptions(opts ...retrieval.Option) AgentOption {
	return func(o *agentOptions) {
		o.retrievalOpts = append(o.retrievalOpts, opts...)
	}
}

// NewAgent opens the evidence database at evidencePath and, when
// transcriptPath is non-empty, the chat transcript at transcriptPath.
func NewAgent(evidencePath, transcriptPath string, opts ...AgentOption) (*Agent, error) {
	options := &agentOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	evidence, err := sqlite.Open(evidencePath, provider.Embedder())
	if err != nil {
		provider.Close()
		return nil, err
	}

	var chatLog transcript.Store
	if transcriptPath != "" {
		chatLog, err = tbadger.Open(transcriptPath, false)
		if err != nil {
			evidence.Close()
			provider.Close()
			return nil, err
		}
	}

	completer := provider.Completer()
	p := pipeline.New(
		router.NewClassifier(completer),
		evidence,
		retrieval.NewEngine(evidence, options.retrievalOpts...),
		pipeline.NewSynthesizer(completer),
	)

	return &Agent{
		evidence:   evidence,
		transcript: chatLog,
		provider:   provider,
		pipeline:   p,
		logger:     slog.Default(),
	}, nil
}

// Close releases the agent's resources.
func (a *Agent) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if a.transcript != nil {
		if err := a.transcript.Close(); err != nil {
			a.logger.Error("error closing transcript", "err", err)
			a.evidence.Close()
			return err
		}
	}

	return a.evidence.Close()
}

// Ask answers one question end to end and records the turn in the transcript
// when one is open. Transcript failures are logged, never surfaced: losing a
// history entry must not lose the answer.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	answer, err := a.pipeline.HandleUserQuery(ctx, question)
	if err != nil {
		return "", err
	}

	a.recordTurn(ctx, question, answer)
	return answer, nil
}

// History returns up to limit most recent transcript messages in
// chronological order. Without an open transcript it returns nothing.
func (a *Agent) History(ctx context.Context, limit int) ([]*core.Message, error) {
	if a.transcript == nil {
		return nil, nil
	}
	return a.transcript.Recent(ctx, limit)
}

// NewIngestionPipeline creates an ingestion pipeline bound to the agent's
// evidence store and embedder.
func (a *Agent) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(a.evidence, a.provider.Embedder(), opts...)
}

func (a *Agent) recordTurn(ctx context.Context, question, answer string) {
	if a.transcript == nil {
		return
	}

	now := time.Now().UTC()
	_, err := a.transcript.Append(ctx,
		&core.Message{Role: core.RoleUser, Content: question, Timestamp: now},
		&core.Message{Role: core.RoleAssistant, Content: answer, Timestamp: now.Add(time.Microsecond)},
	)
	if err != nil {
		a.logger.Error("error recording transcript turn", "err", err)
	}
}
