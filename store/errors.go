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


package store

import "errors"

var (
	// ErrEmptyQuery is returned when a search or query operation receives no text.
	ErrEmptyQuery = errors.New("query text cannot be empty")

	// ErrNotReadOnly is returned by the read-only policy when structured query
	// text is not a single read-intent statement.
	ErrNotReadOnly = errors.New("structured query must be a single read-only statement")

	// ErrEmbedderRequired is returned when a store needing embeddings is
	// constructed without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")
)
