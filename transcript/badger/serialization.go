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

import "github.com/campusworks/clubagent/core"

// marshalMessage serializes a message with MUS encoding.
func marshalMessage(msg *core.Message) []byte {
	bs := make([]byte, core.MessageMUS.Size(*msg))
	core.MessageMUS.Marshal(*msg, bs)
	return bs
}

// unmarshalMessage deserializes a message from MUS encoding.
func unmarshalMessage(bs []byte) (*core.Message, error) {
	msg, _, err := core.MessageMUS.Unmarshal(bs)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// marshalID serializes an ID for index values.
func marshalID(id core.ID) []byte {
	bs := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, bs)
	return bs
}

// unmarshalID deserializes an ID from an index value.
func unmarshalID(bs []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(bs)
	return id, err
}
