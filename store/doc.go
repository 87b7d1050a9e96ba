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


// Package store defines the evidence-store boundary: structured SQL lookups
// over the events table and the two passage search paths (similarity and
// lexical) the hybrid retrieval engine fuses.
//
// The structured operation deliberately returns sentinel rows instead of
// errors: a failed or empty query is data the synthesizer can phrase a
// graceful answer from, not an exception to propagate.
//
// The production implementation lives in store/sqlite.
package store
