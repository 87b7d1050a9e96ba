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

import "errors"

// Domain validation errors
var (
	// ErrEmptyQuestion indicates a question contained no text to process.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrInvalidMessage indicates a transcript Message failed validation.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrInvalidEvent indicates an Event record failed validation.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrEmptyEventID indicates the EventID field is empty.
	ErrEmptyEventID = errors.New("event id cannot be empty")
)
