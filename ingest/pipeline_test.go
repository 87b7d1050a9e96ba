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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/clubagent/ai/mock"
	"github.com/campusworks/clubagent/core"
	"github.com/campusworks/clubagent/store/sqlite"
)

func testEvents() []*core.Event {
	return []*core.Event{
		{
			EventID:     "EV-001",
			Name:        "RoboRace",
			ClubName:    "BIONARY",
			Domain:      "Hackathon / AI / Robotics",
			Date:        "2025-03-15",
			Description: "An autonomous line-follower competition.",
			Highlights:  "Live obstacle course finals.",
			Perks:       "Certificates and goodies.",
		},
		{
			EventID:     "EV-002",
			Name:        "Circuit Craft",
			ClubName:    "BIONARY",
			Domain:      "Hardware / IoT",
			Date:        "2025-01-20",
			Description: "A beginner friendly soldering workshop.",
		},
		{
			// No text fields at all; contributes no chunks.
			EventID: "EV-003",
			Name:    "Mystery Meetup",
			Date:    "2025-02-01",
		},
	}
}

func TestRunIngestsEventsAndPassages(t *testing.T) {
	evidence, err := sqlite.Open(":memory:", mock.NewMockEmbedder())
	require.NoError(t, err)
	defer evidence.Close()

	p, err := NewPipeline(evidence, mock.NewMockEmbedder(), WithPoolSize(2))
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Run(context.Background(), testEvents()))

	rows := evidence.ExecuteStructured(context.Background(), `SELECT COUNT(*) FROM events`)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 3, rows[0][0])

	// 3 chunks for EV-001, 1 for EV-002, 0 for EV-003.
	rows = evidence.ExecuteStructured(context.Background(), `SELECT COUNT(*) FROM chunks`)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 4, rows[0][0])
}

func TestRunIsIdempotent(t *testing.T) {
	evidence, err := sqlite.Open(":memory:", mock.NewMockEmbedder())
	require.NoError(t, err)
	defer evidence.Close()

	p, err := NewPipeline(evidence, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Run(context.Background(), testEvents()))
	require.NoError(t, p.Run(context.Background(), testEvents()))

	rows := evidence.ExecuteStructured(context.Background(), `SELECT COUNT(*) FROM chunks`)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 4, rows[0][0])
}

func TestRunPropagatesEmbeddingErrors(t *testing.T) {
	evidence, err := sqlite.Open(":memory:", mock.NewMockEmbedder())
	require.NoError(t, err)
	defer evidence.Close()

	embedder := mock.NewMockEmbedder()
	wantErr := errors.New("embedding service down")
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, wantErr
	}

	p, err := NewPipeline(evidence, embedder)
	require.NoError(t, err)
	defer p.Release()

	err = p.Run(context.Background(), testEvents())
	assert.ErrorIs(t, err, wantErr)
}

func TestRunEmptyDataset(t *testing.T) {
	evidence, err := sqlite.Open(":memory:", mock.NewMockEmbedder())
	require.NoError(t, err)
	defer evidence.Close()

	p, err := NewPipeline(evidence, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer p.Release()

	assert.NoError(t, p.Run(context.Background(), nil))
}

func TestNewPipelineValidates(t *testing.T) {
	_, err := NewPipeline(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrWriterRequired)

	evidence, err := sqlite.Open(":memory:", mock.NewMockEmbedder())
	require.NoError(t, err)
	defer evidence.Close()

	_, err = NewPipeline(evidence, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestPassagesFromEvent(t *testing.T) {
	passages := passagesFromEvent(testEvents()[0])
	require.Len(t, passages, 3)

	assert.Equal(t, "RoboRace by BIONARY (Hackathon / AI / Robotics): An autonomous line-follower competition.", passages[0])
	assert.Contains(t, passages[1], "Highlights of RoboRace")
	assert.Contains(t, passages[2], "Perks of RoboRace")

	assert.Empty(t, passagesFromEvent(testEvents()[2]))
}
