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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusworks/clubagent/core"
)

func vectorHits(texts ...string) []core.ScoredPassage {
	hits := make([]core.ScoredPassage, len(texts))
	for i, text := range texts {
		hits[i] = core.ScoredPassage{Text: text, Score: 1 - float64(i)*0.1, Source: core.SourceVector}
	}
	return hits
}

func lexicalHits(texts ...string) []core.ScoredPassage {
	hits := make([]core.ScoredPassage, len(texts))
	for i, text := range texts {
		hits[i] = core.ScoredPassage{Text: text, Score: 10 - float64(i), Source: core.SourceLexical}
	}
	return hits
}

func TestFuseByRankVectorFirstThenLexicalOnly(t *testing.T) {
	fused := fuseByRank(vectorHits("A", "B", "C"), lexicalHits("B", "D", "E"), 5)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, fused)
}

func TestFuseByRankOverlapKeepsVectorPosition(t *testing.T) {
	// "C" is both paths' hit; it must keep its vector rank, not move behind
	// the vector list.
	fused := fuseByRank(vectorHits("A", "B", "C"), lexicalHits("C", "A"), 5)
	assert.Equal(t, []string{"A", "B", "C"}, fused)
}

func TestFuseByRankVectorOnly(t *testing.T) {
	fused := fuseByRank(vectorHits("A", "B"), nil, 5)
	assert.Equal(t, []string{"A", "B"}, fused)
}

func TestFuseByRankLexicalOnlyPreservesOrder(t *testing.T) {
	fused := fuseByRank(nil, lexicalHits("E", "D", "F"), 5)
	assert.Equal(t, []string{"E", "D", "F"}, fused)
}

func TestFuseByRankEmpty(t *testing.T) {
	assert.Empty(t, fuseByRank(nil, nil, 5))
}

func TestFuseByRankDuplicatesWithinOnePath(t *testing.T) {
	fused := fuseByRank(vectorHits("A", "A", "B"), lexicalHits("B", "B", "C"), 5)
	assert.Equal(t, []string{"A", "B", "C"}, fused)
}
