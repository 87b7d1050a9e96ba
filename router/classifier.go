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


package router

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusworks/clubagent/ai"
	"github.com/campusworks/clubagent/core"
)

// maxParseAttempts bounds re-asks when the model returns malformed JSON.
const maxParseAttempts = 3

// Classifier routes a user question to a retrieval strategy with a single
// model call per attempt. It does not execute anything; it only decides.
type Classifier struct {
	completer ai.Completer
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// WithClock overrides the time source used for year anchoring. Intended for
// tests.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClassifier creates a classifier on top of a completion service.
func NewClassifier(completer ai.Completer, opts ...Option) *Classifier {
	c := &Classifier{
		completer: completer,
		now:       time.Now,
		logger:    slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify converts a question into a routing decision. A transport failure
// is the only error case; every response-shaped problem (malformed JSON after
// retries, unknown intent, blocked response, empty query) folds into an
// unparseable intent so the pipeline can still answer something.
func (c *Classifier) Classify(ctx context.Context, question string) (core.Intent, error) {
	if err := core.ValidateQuestion(question); err != nil {
		return core.Intent{}, err
	}

	prompt := buildRoutingPrompt(question, c.now().Year())

	var lastErr error
	for attempt := 1; attempt <= maxParseAttempts; attempt++ {
		completion, err := c.completer.Complete(ctx, prompt)
		if err != nil {
			c.logger.Error("classification call failed", "attempt", attempt, "err", err)
			return core.Intent{}, fmt.Errorf("classifying question: %w", err)
		}

		if completion.Blocked() {
			return core.UnparseableIntent("classifier response blocked: " + completion.BlockReason), nil
		}

		intent, err := parseIntent(completion.Text)
		if err != nil {
			lastErr = err
			c.logger.Warn("error parsing router response",
				"attempt", attempt,
				"response", completion.Text,
				"err", err)
			continue
		}

		c.logger.Debug("question routed", "intent", intent.Kind.String())
		return intent, nil
	}

	c.logger.Error("failed to parse router response after retries", "err", lastErr)
	return core.UnparseableIntent(lastErr.Error()), nil
}
