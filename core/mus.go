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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types persisted in the transcript store.
// Timestamps travel as Unix microseconds.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// RoleMUS serializes Role values.
var RoleMUS = roleMUS{}

type roleMUS struct{}

func (roleMUS) Marshal(v Role, bs []byte) int {
	return varint.Int.Marshal(int(v), bs)
}

func (roleMUS) Unmarshal(bs []byte) (Role, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return Role(v), n, err
}

func (roleMUS) Size(v Role) int {
	return varint.Int.Size(int(v))
}

func (roleMUS) Skip(bs []byte) (int, error) {
	return varint.Int.Skip(bs)
}

// MessageMUS serializes transcript messages.
var MessageMUS = messageMUS{}

type messageMUS struct{}

func (messageMUS) Marshal(v Message, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += RoleMUS.Marshal(v.Role, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += varint.Int64.Marshal(v.Timestamp.UnixMicro(), bs[n:])
	return
}

func (messageMUS) Unmarshal(bs []byte) (v Message, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Role, n1, err = RoleMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp = time.UnixMicro(micros).UTC()
	return
}

func (messageMUS) Size(v Message) (size int) {
	size = IDMUS.Size(v.Id)
	size += RoleMUS.Size(v.Role)
	size += ord.String.Size(v.Content)
	size += varint.Int64.Size(v.Timestamp.UnixMicro())
	return
}

func (messageMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = RoleMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}
