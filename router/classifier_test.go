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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/clubagent/ai"
	"github.com/campusworks/clubagent/ai/mock"
	"github.com/campusworks/clubagent/core"
)

func respondWith(text string) func(context.Context, string) (ai.Completion, error) {
	return func(context.Context, string) (ai.Completion, error) {
		return ai.Completion{Text: text}, nil
	}
}

func TestClassifyStructuredQuestion(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = respondWith(
		`{"intent": "structured", "query": "SELECT COUNT(event_id) FROM events WHERE event_domain ILIKE '%robotics%'"}`)

	intent, err := NewClassifier(completer).Classify(context.Background(),
		"How many robotics events were there?")
	require.NoError(t, err)

	assert.Equal(t, core.IntentStructured, intent.Kind)
	assert.Contains(t, intent.Query, "COUNT(event_id)")
	assert.Equal(t, 1, completer.CallCount())
}

func TestClassifySemanticQuestion(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = respondWith(`{"intent": "semantic", "query": "arduino workshop content"}`)

	intent, err := NewClassifier(completer).Classify(context.Background(),
		"What did the Arduino workshop cover?")
	require.NoError(t, err)

	assert.Equal(t, core.IntentSemantic, intent.Kind)
	assert.Equal(t, "arduino workshop content", intent.Query)
}

func TestClassifyRetriesOnMalformedJSON(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(context.Context, string) (ai.Completion, error) {
		if completer.CallCount() == 1 {
			return ai.Completion{Text: "no json here"}, nil
		}
		return ai.Completion{Text: `{"intent": "semantic", "query": "rag"}`}, nil
	}

	intent, err := NewClassifier(completer).Classify(context.Background(), "What is RAG?")
	require.NoError(t, err)

	assert.Equal(t, core.IntentSemantic, intent.Kind)
	assert.Equal(t, 2, completer.CallCount())
}

func TestClassifyGivesUpAfterRetries(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = respondWith("still no json")

	intent, err := NewClassifier(completer).Classify(context.Background(), "What is RAG?")
	require.NoError(t, err)

	assert.Equal(t, core.IntentUnparseable, intent.Kind)
	assert.NotEmpty(t, intent.Reason)
	assert.Equal(t, maxParseAttempts, completer.CallCount())
}

func TestClassifyBlockedResponse(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(context.Context, string) (ai.Completion, error) {
		return ai.Completion{BlockReason: "content_filter"}, nil
	}

	intent, err := NewClassifier(completer).Classify(context.Background(), "a question")
	require.NoError(t, err)

	assert.Equal(t, core.IntentUnparseable, intent.Kind)
	assert.Contains(t, intent.Reason, "content_filter")
	assert.Equal(t, 1, completer.CallCount())
}

func TestClassifyTransportError(t *testing.T) {
	completer := mock.NewMockCompleter()
	wantErr := errors.New("connection refused")
	completer.CompleteFunc = func(context.Context, string) (ai.Completion, error) {
		return ai.Completion{}, wantErr
	}

	_, err := NewClassifier(completer).Classify(context.Background(), "a question")
	assert.ErrorIs(t, err, wantErr)
}

func TestClassifyEmptyQuestion(t *testing.T) {
	completer := mock.NewMockCompleter()

	_, err := NewClassifier(completer).Classify(context.Background(), "   ")
	assert.ErrorIs(t, err, core.ErrEmptyQuestion)
	assert.Zero(t, completer.CallCount())
}

func TestClassifyAnchorsYearsInPrompt(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = respondWith(`{"intent": "semantic", "query": "x"}`)

	clock := func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	_, err := NewClassifier(completer, WithClock(clock)).Classify(context.Background(),
		"How many events this year?")
	require.NoError(t, err)

	prompt := completer.LastPrompt()
	assert.Contains(t, prompt, "'this year' is 2025")
	assert.Contains(t, prompt, "'last year' is 2024")
	assert.Contains(t, prompt, `"How many events this year?"`)
	assert.Contains(t, prompt, "event_domain ILIKE '%robotics%'")
}
