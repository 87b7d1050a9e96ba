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

	"github.com/campusworks/clubagent/ai"
)

// Fixed user-facing fallbacks. These are returned verbatim; callers and tests
// depend on the exact wording.
const (
	// ParseApology is returned when the routing call itself fails.
	ParseApology = "Sorry, I had trouble understanding."

	// AnswerApology is returned when the synthesis call itself fails.
	AnswerApology = "Sorry, I had trouble formulating a response."
)

const synthesisPromptTemplate = `You are the 'Club Knowledge Search Agent'. Your job is to synthesize a final answer
from the provided context. You MUST answer the user's question.

You are given the user's question, the retrieved context, and (if applicable)
the SQL query that was run to get that context.

---
User Question:
%s
---
Context:
%s
---
SQL Query (if any):
%s
---

INSTRUCTIONS:
1.  If the Context is a Database Result (e.g., "Database query returned: [(1,)]"):
    * Look at the 'SQL Query' and the 'Context' together.
    * If the query was SELECT COUNT... and the result is [(1,)], the answer is 1.
    * If the query was SELECT COUNT... and the result is [(0,)], the answer is 0.
    * Synthesize the raw SQL result into a natural, human-readable sentence.
    * Example: if the query was SELECT COUNT... and the result is [(1,)] and the
      question was "How many robotics events...", answer "There was 1 robotics event."
    * Example: if the query was SELECT speakers... and the result is
      [('Dr. A',), ('Dr. B',)], answer "The speakers were Dr. A and Dr. B."
    * If the result is [('No results found for that query.',)] or [] or [('',)],
      state "I do not have that information in my records."

2.  If the Context is semantic text (from vector search):
    * Read the text chunks to find the answer.
    * Be helpful: if the user asks about a specific topic (e.g., "RAG"), and the
      context shows an event mentions that topic (even in 'perks' or
      'highlights'), you MUST state that you found a mention and present the
      details (e.g., "Yes, the 'From Voice to Notes' event mentioned RAG in its
      perks...").
    * If the answer is not in the text, state "I do not have that information
      in my records."

3.  Do not make up information. Answer ONLY from the context.

Final Answer:
`

// Synthesizer turns retrieved context into a final natural-language answer
// with one model call. It never returns an error: call failures and blocked
// responses become fixed user-facing strings.
type Synthesizer struct {
	completer ai.Completer
	logger    *slog.Logger
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithSynthesizerLogger sets a custom logger.
// Default is slog.Default().
func WithSynthesizerLogger(logger *slog.Logger) SynthesizerOption {
	return func(s *Synthesizer) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSynthesizer creates a synthesizer on top of a completion service.
func NewSynthesizer(completer ai.Completer, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		completer: completer,
		logger:    slog.Default().With("component", "synthesizer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize produces the final answer for a question from its retrieved
// context. sqlQuery is the structured query that produced the context, or ""
// for the semantic and failure paths; the prompt shows "N/A" in that case so
// the model can reason about counts against the query shape.
func (s *Synthesizer) Synthesize(ctx context.Context, question, contextText, sqlQuery string) string {
	if sqlQuery == "" {
		sqlQuery = "N/A"
	}
	prompt := fmt.Sprintf(synthesisPromptTemplate, question, contextText, sqlQuery)

	completion, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("synthesis call failed", "err", err)
		return AnswerApology
	}

	if completion.Blocked() {
		s.logger.Warn("synthesis response blocked", "reason", completion.BlockReason)
		return fmt.Sprintf("Sorry, the response was blocked. Reason: %s", completion.BlockReason)
	}

	if completion.Text == "" {
		s.logger.Warn("synthesis returned empty response")
		return AnswerApology
	}

	return completion.Text
}
