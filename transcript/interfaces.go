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


package transcript

import (
	"context"

	"github.com/campusworks/clubagent/core"
)

// Store is the append-only chat transcript. Messages are assigned IDs on
// append; nothing is ever updated or deleted.
type Store interface {
	// Append persists messages, assigning each a fresh ID. A zero timestamp
	// is filled in with the current time. Returns the stored messages with
	// IDs set.
	Append(ctx context.Context, messages ...*core.Message) ([]*core.Message, error)

	// Recent returns up to limit most recent messages in chronological
	// order, oldest first.
	Recent(ctx context.Context, limit int) ([]*core.Message, error)

	// Close releases store resources.
	Close() error
}
