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


package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs, which makes
// re-ingesting the same dataset idempotent.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IntentKind classifies a user question into a retrieval strategy.
type IntentKind int

const (
	// IntentUnparseable means no usable intent could be decoded from the
	// classifier response.
	IntentUnparseable IntentKind = iota
	// IntentStructured routes the question to an exact, schema-aware SQL
	// query against the events table.
	IntentStructured
	// IntentSemantic routes the question to hybrid similarity search over
	// passage text.
	IntentSemantic
)

// String returns a human-readable name for the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentStructured:
		return "structured"
	case IntentSemantic:
		return "semantic"
	default:
		return "unparseable"
	}
}

// Intent is the routing decision for a single question. It is a tagged value:
// exactly one of the three kinds, with Query populated for the structured and
// semantic kinds and Reason populated for the unparseable kind.
type Intent struct {
	Kind   IntentKind
	Query  string // SQL text (structured) or search phrase (semantic)
	Reason string // why classification failed (unparseable only)
}

// StructuredIntent creates a structured intent carrying the generated SQL
// text. An empty query violates the intent invariant and downgrades to
// unparseable instead of producing an invalid value.
func StructuredIntent(queryText string) Intent {
	if queryText == "" {
		return UnparseableIntent("structured intent with empty query")
	}
	return Intent{Kind: IntentStructured, Query: queryText}
}

// SemanticIntent creates a semantic intent carrying the search phrase.
// An empty phrase downgrades to unparseable.
func SemanticIntent(phrase string) Intent {
	if phrase == "" {
		return UnparseableIntent("semantic intent with empty search phrase")
	}
	return Intent{Kind: IntentSemantic, Query: phrase}
}

// UnparseableIntent creates a failed routing decision with a diagnostic reason.
func UnparseableIntent(reason string) Intent {
	return Intent{Kind: IntentUnparseable, Reason: reason}
}

// PassageSource identifies which retrieval path produced a scored passage.
type PassageSource int

const (
	// SourceVector marks passages from approximate vector similarity search.
	SourceVector PassageSource = iota + 1
	// SourceLexical marks passages from full-text keyword search.
	SourceLexical
)

// String returns a human-readable name for the passage source.
func (s PassageSource) String() string {
	switch s {
	case SourceVector:
		return "vector"
	case SourceLexical:
		return "lexical"
	default:
		return "unknown"
	}
}

// ScoredPassage is a single retrieval hit. Scores from different sources are
// not numerically comparable; fusion works on rank order, never raw scores.
type ScoredPassage struct {
	Text   string
	Score  float64
	Source PassageSource
}

// Event is one club event record in the structured store. The column set
// mirrors the events table schema the classifier prompt describes.
type Event struct {
	EventID             string `json:"event_id"`
	Name                string `json:"name_of_event"`
	ClubName            string `json:"club_name"`
	Domain              string `json:"event_domain"`
	Date                string `json:"date_of_event"` // YYYY-MM-DD
	Time                string `json:"time_of_event"`
	FacultyCoordinators string `json:"faculty_coordinators"`
	StudentCoordinators string `json:"student_coordinators"`
	Venue               string `json:"venue"`
	Mode                string `json:"mode_of_event"`
	RegistrationFee     string `json:"registration_fee"`
	Speakers            string `json:"speakers"`
	Perks               string `json:"perks"`
	Description         string `json:"description"`
	Highlights          string `json:"highlights"`
}

// Role identifies the author of a transcript message.
type Role int

const (
	// RoleUser represents the human asking questions.
	RoleUser Role = iota + 1
	// RoleAssistant represents the agent's answers.
	RoleAssistant
)

// Message is a single turn in the append-only chat transcript.
type Message struct {
	Id        ID
	Role      Role
	Content   string
	Timestamp time.Time
}
