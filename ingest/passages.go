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
	"fmt"
	"strings"

	"github.com/campusworks/clubagent/core"
)

// passagesFromEvent builds the semantic search chunks for one event:
// description, highlights, and perks, each prefixed with enough event/club/
// domain context to stand alone when retrieved.
func passagesFromEvent(event *core.Event) []string {
	var passages []string

	header := event.Name
	if event.ClubName != "" {
		header += " by " + event.ClubName
	}
	if event.Domain != "" {
		header += " (" + event.Domain + ")"
	}

	if text := strings.TrimSpace(event.Description); text != "" {
		passages = append(passages, fmt.Sprintf("%s: %s", header, text))
	}
	if text := strings.TrimSpace(event.Highlights); text != "" {
		passages = append(passages, fmt.Sprintf("Highlights of %s: %s", header, text))
	}
	if text := strings.TrimSpace(event.Perks); text != "" {
		passages = append(passages, fmt.Sprintf("Perks of %s: %s", header, text))
	}

	return passages
}
