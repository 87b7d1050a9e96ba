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
	"fmt"
	"strings"
	"time"
)

// ValidateQuestion checks that a question has text to process.
// Whitespace-only input counts as empty.
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

// ValidateMessage validates a transcript Message according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - Role must be valid (User or Assistant)
//   - Timestamp must not be in the future
//
// ID is not validated: 0 is valid before a database sequence assigns one.
func ValidateMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if msg.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyContent)
	}

	if err := ValidateRole(msg.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if !IsValidTimestamp(msg.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateRole checks that a Role has one of the defined values.
func ValidateRole(role Role) error {
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("%w: %d", ErrInvalidRole, role)
	}
	return nil
}

// IsValidTimestamp reports whether a timestamp is usable: non-zero and not
// in the future. A small clock-skew allowance of one minute is tolerated.
func IsValidTimestamp(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.After(time.Now().Add(time.Minute))
}

// ValidateEvent validates an Event record before ingestion.
//
// Validation rules:
//   - EventID must not be empty
//
// The remaining columns are free-form text in the source dataset and may be
// blank.
func ValidateEvent(event *Event) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidEvent)
	}

	if event.EventID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyEventID)
	}

	return nil
}
