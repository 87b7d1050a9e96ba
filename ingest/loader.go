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
	"encoding/json"
	"fmt"
	"os"

	"github.com/campusworks/clubagent/core"
)

// LoadEvents reads the event dataset from a JSON file: an array of event
// objects whose keys match the events table columns, plus optional
// description and highlights fields for the semantic chunks.
func LoadEvents(path string) ([]*core.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var events []*core.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	for i, event := range events {
		if err := core.ValidateEvent(event); err != nil {
			return nil, fmt.Errorf("dataset entry %d: %w", i, err)
		}
	}

	return events, nil
}
