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


package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/clubagent/core"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()

	log, err := Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func TestAppendAssignsIDs(t *testing.T) {
	log := openTestLog(t)

	stored, err := log.Append(context.Background(),
		&core.Message{Role: core.RoleUser, Content: "How many robotics events were there?"},
		&core.Message{Role: core.RoleAssistant, Content: "There was 1 robotics event."},
	)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.NotZero(t, stored[0].Id)
	assert.NotZero(t, stored[1].Id)
	assert.NotEqual(t, stored[0].Id, stored[1].Id)
	assert.False(t, stored[0].Timestamp.IsZero())
}

func TestAppendValidates(t *testing.T) {
	log := openTestLog(t)

	_, err := log.Append(context.Background(), &core.Message{Role: core.RoleUser})
	assert.ErrorIs(t, err, core.ErrEmptyContent)

	_, err = log.Append(context.Background(), &core.Message{Content: "no role"})
	assert.ErrorIs(t, err, core.ErrInvalidRole)
}

func TestRecentChronologicalOrder(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, content := range []string{"first", "second", "third"} {
		_, err := log.Append(ctx, &core.Message{
			Role:      core.RoleUser,
			Content:   content,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	recent, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	assert.Equal(t, "first", recent[0].Content)
	assert.Equal(t, "second", recent[1].Content)
	assert.Equal(t, "third", recent[2].Content)
}

func TestRecentHonorsLimit(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := log.Append(ctx, &core.Message{
			Role:      core.RoleUser,
			Content:   string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	recent, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// The two newest, oldest first.
	assert.Equal(t, "d", recent[0].Content)
	assert.Equal(t, "e", recent[1].Content)
}

func TestRecentEmptyLog(t *testing.T) {
	log := openTestLog(t)

	recent, err := log.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	recent, err = log.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestMessageRoundTrip(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 10, 30, 15, 123456000, time.UTC)

	stored, err := log.Append(ctx, &core.Message{
		Role:      core.RoleAssistant,
		Content:   "The speakers were Dr. A and Dr. B.",
		Timestamp: ts,
	})
	require.NoError(t, err)

	recent, err := log.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	assert.Equal(t, stored[0].Id, recent[0].Id)
	assert.Equal(t, core.RoleAssistant, recent[0].Role)
	assert.Equal(t, "The speakers were Dr. A and Dr. B.", recent[0].Content)
	assert.True(t, ts.Equal(recent[0].Timestamp))
}
