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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/clubagent/ai"
	"github.com/campusworks/clubagent/ai/mock"
	"github.com/campusworks/clubagent/core"
	"github.com/campusworks/clubagent/retrieval"
	"github.com/campusworks/clubagent/router"
	"github.com/campusworks/clubagent/store"
	"github.com/campusworks/clubagent/store/sqlite"
)

// scriptedCompleter answers routing and synthesis prompts differently, which
// lets one completer drive a full pipeline run.
type scriptedCompleter struct {
	*mock.MockCompleter
	synthPrompts []string
}

func newScriptedCompleter(routingResponse, synthesisResponse string) *scriptedCompleter {
	sc := &scriptedCompleter{MockCompleter: mock.NewMockCompleter()}
	sc.CompleteFunc = func(_ context.Context, prompt string) (ai.Completion, error) {
		if strings.Contains(prompt, "query-parsing agent") {
			return ai.Completion{Text: routingResponse}, nil
		}
		sc.synthPrompts = append(sc.synthPrompts, prompt)
		return ai.Completion{Text: synthesisResponse}, nil
	}
	return sc
}

func (sc *scriptedCompleter) lastSynthPrompt() string {
	if len(sc.synthPrompts) == 0 {
		return ""
	}
	return sc.synthPrompts[len(sc.synthPrompts)-1]
}

func buildPipeline(t *testing.T, completer ai.Completer) (*Pipeline, *sqlite.Store) {
	t.Helper()

	evidence, err := sqlite.Open(":memory:", mock.NewMockEmbedder())
	require.NoError(t, err)
	t.Cleanup(func() { evidence.Close() })

	p := New(
		router.NewClassifier(completer),
		evidence,
		retrieval.NewEngine(evidence),
		NewSynthesizer(completer),
	)
	return p, evidence
}

func seedEvidence(t *testing.T, evidence *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	err := evidence.AddEvents(ctx,
		&core.Event{EventID: "EV-001", Name: "RoboRace", Domain: "Hackathon / AI / Robotics", Date: "2025-03-15"},
		&core.Event{EventID: "EV-002", Name: "Circuit Craft", Domain: "Hardware / IoT", Date: "2025-01-20"},
	)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	for _, text := range []string{
		"The Arduino workshop covered sensor wiring, PWM motor control, and serial debugging.",
		"From Voice to Notes mentioned RAG in its perks section.",
	} {
		vector, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		require.NoError(t, evidence.AddPassages(ctx, &store.Passage{Text: text, Vector: vector}))
	}
}

func TestHandleUserQueryStructuredCount(t *testing.T) {
	completer := newScriptedCompleter(
		`{"intent": "structured", "query": "SELECT COUNT(event_id) FROM events WHERE event_domain ILIKE '%robotics%'"}`,
		"There was 1 robotics event.")
	p, evidence := buildPipeline(t, completer)
	seedEvidence(t, evidence)

	answer, err := p.HandleUserQuery(context.Background(), "How many robotics events were there?")
	require.NoError(t, err)
	assert.Equal(t, "There was 1 robotics event.", answer)

	prompt := completer.lastSynthPrompt()
	assert.Contains(t, prompt, "Database query returned: [(1,)]")
	assert.Contains(t, prompt, "SELECT COUNT(event_id)")
}

func TestHandleUserQuerySemantic(t *testing.T) {
	completer := newScriptedCompleter(
		`{"intent": "semantic", "query": "The Arduino workshop covered sensor wiring, PWM motor control, and serial debugging."}`,
		"The Arduino workshop covered sensor wiring, motor control, and debugging.")
	p, evidence := buildPipeline(t, completer)
	seedEvidence(t, evidence)

	answer, err := p.HandleUserQuery(context.Background(), "What did the Arduino workshop cover?")
	require.NoError(t, err)
	assert.Contains(t, answer, "Arduino workshop")

	// The matching chunk must have reached the synthesis context.
	assert.Contains(t, completer.lastSynthPrompt(), "sensor wiring")
	assert.Contains(t, completer.lastSynthPrompt(), "SQL Query (if any):\nN/A")
}

func TestHandleUserQueryStructuredErrorStaysGraceful(t *testing.T) {
	completer := newScriptedCompleter(
		`{"intent": "structured", "query": "SELECT nope FROM not_a_table"}`,
		"I do not have that information in my records.")
	p, _ := buildPipeline(t, completer)

	answer, err := p.HandleUserQuery(context.Background(), "List the speakers.")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)

	assert.Contains(t, completer.lastSynthPrompt(), core.SQLErrorPrefix)
}

func TestHandleUserQueryUnparseableIntent(t *testing.T) {
	completer := newScriptedCompleter(
		`{"intent": "hybrid", "query": "x"}`,
		"I'm not sure how to answer that.")
	p, _ := buildPipeline(t, completer)

	answer, err := p.HandleUserQuery(context.Background(), "asdf qwerty")
	require.NoError(t, err)
	assert.Equal(t, "I'm not sure how to answer that.", answer)

	assert.Contains(t, completer.lastSynthPrompt(), "Query parser failed or returned unknown intent")
}

func TestHandleUserQueryRoutingTransportFailure(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(context.Context, string) (ai.Completion, error) {
		return ai.Completion{}, context.DeadlineExceeded
	}
	p, _ := buildPipeline(t, completer)

	answer, err := p.HandleUserQuery(context.Background(), "any question")
	require.NoError(t, err)
	assert.Equal(t, ParseApology, answer)
}

func TestHandleUserQueryBlockedSynthesis(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(_ context.Context, prompt string) (ai.Completion, error) {
		if strings.Contains(prompt, "query-parsing agent") {
			return ai.Completion{Text: `{"intent": "semantic", "query": "robotics"}`}, nil
		}
		return ai.Completion{BlockReason: "content_filter"}, nil
	}
	p, evidence := buildPipeline(t, completer)
	seedEvidence(t, evidence)

	answer, err := p.HandleUserQuery(context.Background(), "Tell me about robotics.")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, the response was blocked. Reason: content_filter", answer)
}

func TestHandleUserQueryEmptyQuestion(t *testing.T) {
	p, _ := buildPipeline(t, mock.NewMockCompleter())

	_, err := p.HandleUserQuery(context.Background(), "   ")
	assert.ErrorIs(t, err, core.ErrEmptyQuestion)
}

func TestHandleUserQuerySemanticNoDocuments(t *testing.T) {
	completer := newScriptedCompleter(
		`{"intent": "semantic", "query": "underwater basket weaving"}`,
		"I do not have that information in my records.")
	p, _ := buildPipeline(t, completer)

	answer, err := p.HandleUserQuery(context.Background(), "Tell me about underwater basket weaving.")
	require.NoError(t, err)
	assert.Equal(t, "I do not have that information in my records.", answer)

	assert.Contains(t, completer.lastSynthPrompt(), retrieval.NoDocumentsMessage)
}
