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
	"sort"

	"github.com/campusworks/clubagent/core"
)

// fuseByRank merges the two result lists by rank position, never by raw
// score: vector scores and lexical scores live on incomparable scales.
// Vector hits keep their list position as rank; lexical-only hits all share
// demotedRank, which must be at least the vector list length so they sort
// after every vector hit. Duplicates keep their first (best) rank.
func fuseByRank(vector, lexical []core.ScoredPassage, demotedRank int) []string {
	ranks := make(map[string]int, len(vector)+len(lexical))
	order := make([]string, 0, len(vector)+len(lexical))

	for i, passage := range vector {
		if _, seen := ranks[passage.Text]; seen {
			continue
		}
		ranks[passage.Text] = i
		order = append(order, passage.Text)
	}

	for _, passage := range lexical {
		if _, seen := ranks[passage.Text]; seen {
			continue
		}
		ranks[passage.Text] = demotedRank
		order = append(order, passage.Text)
	}

	// Stable, so lexical-only hits keep their relative order at the shared
	// demoted rank.
	sort.SliceStable(order, func(i, j int) bool {
		return ranks[order[i]] < ranks[order[j]]
	})

	return order
}
