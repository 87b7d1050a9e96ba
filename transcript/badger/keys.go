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


package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/campusworks/clubagent/core"
)

// Key prefixes for the transcript keyspace.
const (
	messagePrefix     = "msgrec"
	messageDatePrefix = "msgrecd"
	messageIDSeq      = "msgrecseq"
)

// makeMessageKey generates a key for a message by ID.
func makeMessageKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", messagePrefix, id))
}

// makeMessageDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id, with timestamp and ID in BigEndian so
// lexicographic iteration is time order.
func makeMessageDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := []byte(messageDatePrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialMessageDateKey generates a partial key for date range seeks.
func makePartialMessageDateKey(timestamp time.Time) []byte {
	prefix := []byte(messageDatePrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
