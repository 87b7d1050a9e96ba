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
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/campusworks/clubagent/core"
)

// errNoJSON marks responses that carry no JSON object at all, as opposed to
// ones that carry a malformed or unexpected object.
var errNoJSON = errors.New("no JSON object in response")

// routedQuery matches the JSON contract the routing prompt asks for.
type routedQuery struct {
	Intent string `json:"intent"`
	Query  string `json:"query"`
}

// parseIntent decodes a routing decision from raw model output. A returned
// error means the output was malformed and a retry might help; an unknown
// intent value is a model decision, not a formatting failure, so it comes
// back as an unparseable intent with a nil error.
func parseIntent(text string) (core.Intent, error) {
	payload, err := extractJSONObject(text)
	if err != nil {
		return core.Intent{}, err
	}
	payload = repairJSON(payload)

	var rq routedQuery
	if err := json.Unmarshal([]byte(payload), &rq); err != nil {
		return core.Intent{}, fmt.Errorf("invalid JSON in response: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(rq.Intent)) {
	case "structured":
		return core.StructuredIntent(strings.TrimSpace(rq.Query)), nil
	case "semantic":
		return core.SemanticIntent(strings.TrimSpace(rq.Query)), nil
	default:
		return core.UnparseableIntent(fmt.Sprintf("unknown intent %q", rq.Intent)), nil
	}
}

// extractJSONObject returns the first balanced {...} in the text, tolerating
// prose before and after it. String contents are honored, so braces inside
// SQL literals do not confuse the depth count.
func extractJSONObject(text string) (string, error) {
	text = stripCodeFences(text)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", errNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", errNoJSON
}

// stripCodeFences removes a surrounding markdown code fence if present.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// repairJSON fixes the most common malformation in small-model JSON output:
// a key missing its opening quote, as in `{intent": "semantic"}`.
func repairJSON(s string) string {
	runes := []rune(s)
	fixed := make([]rune, 0, len(runes)+8)

	i := 0
	for i < len(runes) {
		ch := runes[i]
		fixed = append(fixed, ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
			fixed = append(fixed, runes[i])
			i++
		}

		if i >= len(runes) || !isKeyRune(runes[i]) {
			continue
		}

		keyStart := i
		for i < len(runes) && isKeyRune(runes[i]) {
			i++
		}

		// An unquoted run directly followed by ": is a key that lost its
		// opening quote; restore it. The closing quote at runes[i] is copied
		// by the outer loop.
		if i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
			fixed = append(fixed, '"')
		}
		fixed = append(fixed, runes[keyStart:i]...)
	}

	return string(fixed)
}

func isKeyRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
