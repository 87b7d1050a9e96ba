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


// Package ai provides abstractions for the AI services used by the club agent.
//
// This package defines interfaces for AI operations: text completions (used
// for question classification and answer synthesis) and text embeddings (used
// for semantic retrieval). The rest of the system depends only on these
// abstractions, never on a concrete model client.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Completer: Generates a text completion for one prompt
//   - Embedder: Generates vector embeddings from text
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewCompleter, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockCompleter, mock.NewMockEmbedder)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public fields (CallCount, CompleteFunc, etc.).
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	completion, err := provider.Completer().Complete(ctx, "Classify: ...")
//	vector, err := provider.Embedder().EmbedText(ctx, "arduino workshop")
package ai
