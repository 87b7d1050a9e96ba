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
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/campusworks/clubagent/core"
	"github.com/campusworks/clubagent/transcript"
)

// Log implements transcript.Store on BadgerDB. Each message is stored under
// an ID key with a secondary time-ordered date index for recency queries.
type Log struct {
	backend *backend
	idSeq   *badger.Sequence
}

var _ transcript.Store = (*Log)(nil)

// Open creates or opens a transcript log at path. Pass inMemory for an
// ephemeral log in tests.
func Open(path string, inMemory bool) (*Log, error) {
	be, err := openBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	idSeq, err := be.GetSequence(messageIDSeq)
	if err != nil {
		be.Close()
		return nil, err
	}

	return &Log{backend: be, idSeq: idSeq}, nil
}

// Close releases the ID sequence and closes the database.
func (l *Log) Close() error {
	if err := l.idSeq.Release(); err != nil {
		l.backend.Close()
		return err
	}
	return l.backend.Close()
}

// Append persists messages, assigning each a fresh sequence ID and filling in
// zero timestamps with now.
func (l *Log) Append(ctx context.Context, messages ...*core.Message) ([]*core.Message, error) {
	for _, msg := range messages {
		if msg.Timestamp.IsZero() {
			msg.Timestamp = time.Now().UTC()
		}
		if err := core.ValidateRole(msg.Role); err != nil {
			return nil, err
		}
		if msg.Content == "" {
			return nil, core.ErrEmptyContent
		}
	}

	err := l.backend.WithTx(func(tx *badger.Txn) error {
		for _, msg := range messages {
			nextID, err := l.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = l.idSeq.Next()
				if err != nil {
					return err
				}
			}
			msg.Id = core.ID(nextID)

			if err := tx.Set(makeMessageKey(msg.Id), marshalMessage(msg)); err != nil {
				return err
			}
			if err := tx.Set(makeMessageDateKey(msg.Timestamp, msg.Id), marshalID(msg.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return messages, err
}

// Recent returns up to limit most recent messages in chronological order,
// oldest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]*core.Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	var results []*core.Message
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the newest possible date key, then walk backwards.
		startKey := makePartialMessageDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(messageDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var msgID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				msgID, err = unmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			msg, err := l.readMessage(tx, msgID)
			if err != nil {
				return err
			}
			if msg != nil {
				results = append(results, msg)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.Reverse(results)
	return results, nil
}

// readMessage reads one message within a transaction; nil when missing.
func (l *Log) readMessage(tx *badger.Txn, id core.ID) (*core.Message, error) {
	item, err := tx.Get(makeMessageKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var msg *core.Message
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		msg, unmarshalErr = unmarshalMessage(val)
		return unmarshalErr
	})
	return msg, err
}
