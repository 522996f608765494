// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/dbhasher/fault"
	"github.com/bitmark-inc/dbhasher/storage"
)

var testData = map[string][]stringElement{
	"alpha": {
		{"key-one", "data-one"},
		{"key-two", "data-two"},
		{"key-three", "data-three"},
	},
	"beta": {
		{"key-one", "other-one"},
		{"key-four", "other-four"},
	},
	"gamma": {},
}

var testOrder = []string{"alpha", "beta", "gamma"}

func TestParseEngine(t *testing.T) {
	items := []struct {
		text   string
		engine storage.Engine
		err    error
	}{
		{"leveldb", storage.LevelDB, nil},
		{" LevelDB ", storage.LevelDB, nil},
		{"", storage.LevelDB, nil},
		{"pebble", storage.Pebble, nil},
		{"bolt", storage.Bolt, nil},
		{"rocksdb", "", fault.ErrInvalidEngine},
	}

	for i, item := range items {
		engine, err := storage.ParseEngine(item.text)
		assert.Equal(t, item.err, err, "%d: error for: %q", i, item.text)
		assert.Equal(t, item.engine, engine, "%d: engine for: %q", i, item.text)
	}
}

func TestListPartitions(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, testData, testOrder)

			names, err := storage.ListPartitions(engine, path)
			require.NoError(t, err, "list partitions")
			assert.Equal(t, testOrder, names, "partition names")
		})
	}
}

func TestListPartitionsOfEmptyDatabase(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, nil, nil)

			names, err := storage.ListPartitions(engine, path)
			require.NoError(t, err, "list partitions")
			assert.Empty(t, names, "partition names")
		})
	}
}

func TestMissingDatabase(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)

			_, err := storage.ListPartitions(engine, path)
			assert.Equal(t, fault.ErrDatabaseNotFound, err, "list partitions")

			_, err = storage.Open(engine, path, nil)
			assert.Equal(t, fault.ErrDatabaseNotFound, err, "open")
		})
	}
}

func TestOpenAndScan(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, testData, testOrder)

			s, err := storage.Open(engine, path, testOrder)
			require.NoError(t, err, "open")
			defer s.Close()

			handles := s.Partitions()
			require.Equal(t, len(testOrder), len(handles), "partition count")

			for i, h := range handles {
				assert.Equal(t, testOrder[i], h.Name(), "partition: %d name", i)

				expected := make(map[string]string)
				for _, e := range testData[h.Name()] {
					expected[e.key] = e.value
				}
				assert.Equal(t, expected, scanAll(t, s, h), "partition: %s contents", h)
			}
		})
	}
}

func TestOpenMissingPartition(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, testData, testOrder)

			_, err := storage.Open(engine, path, []string{"alpha", "delta"})
			assert.True(t, errors.Is(err, fault.ErrPartitionNotFound), "unexpected error: %v", err)
			assert.True(t, fault.IsErrNotFound(err), "not found class: %v", err)

			// the failed open must release the database
			s, err := storage.Open(engine, path, []string{"alpha"})
			require.NoError(t, err, "reopen")
			assert.NoError(t, s.Close(), "close")
		})
	}
}

func TestPutOverwrites(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, testData, testOrder)

			s, err := storage.Open(engine, path, testOrder)
			require.NoError(t, err, "open")
			defer s.Close()

			beta := s.Partitions()[1]
			err = s.Put(beta, []byte("key-one"), []byte("replaced"))
			require.NoError(t, err, "put")

			contents := scanAll(t, s, beta)
			assert.Equal(t, "replaced", contents["key-one"], "overwritten value")
			assert.Equal(t, 2, len(contents), "no key added")

			// same key in another partition is untouched
			alpha := s.Partitions()[0]
			assert.Equal(t, "data-one", scanAll(t, s, alpha)["key-one"], "other partition")
		})
	}
}

func TestCreatePartitionErrors(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, testData, testOrder)

			s, err := storage.Create(engine, path)
			require.NoError(t, err, "create")
			defer s.Close()

			assert.Equal(t, len(testOrder), len(s.Partitions()), "existing partitions attached")

			_, err = s.CreatePartition("beta")
			assert.Equal(t, fault.ErrPartitionExists, err, "duplicate partition")

			_, err = s.CreatePartition("")
			assert.Equal(t, fault.ErrInvalidPartitionName, err, "blank partition")

			h, err := s.CreatePartition("delta")
			require.NoError(t, err, "new partition")
			assert.Empty(t, scanAll(t, s, h), "new partition is empty")
		})
	}
}

func TestScanStopsOnError(t *testing.T) {
	stop := fmt.Errorf("stop")
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, testData, testOrder)

			s, err := storage.Open(engine, path, testOrder)
			require.NoError(t, err, "open")
			defer s.Close()

			n := 0
			err = s.Scan(s.Partitions()[0], func(key []byte, value []byte) error {
				n += 1
				return stop
			})
			assert.Equal(t, stop, err, "scan error")
			assert.Equal(t, 1, n, "callback count")
		})
	}
}

func TestClosedStore(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, testData, testOrder)

			s, err := storage.Open(engine, path, testOrder)
			require.NoError(t, err, "open")
			h := s.Partitions()[0]
			require.NoError(t, s.Close(), "close")
			assert.NoError(t, s.Close(), "second close")

			err = s.Put(h, []byte("k"), []byte("v"))
			assert.Equal(t, fault.ErrStoreClosed, err, "put after close")
		})
	}
}

func TestInvalidHandle(t *testing.T) {
	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			path := databasePath(t, engine)
			populate(t, engine, path, testData, testOrder)

			s, err := storage.Open(engine, path, testOrder)
			require.NoError(t, err, "open")
			defer s.Close()

			err = s.Put(nil, []byte("k"), []byte("v"))
			assert.Equal(t, fault.ErrInvalidHandle, err, "nil handle")
		})
	}
}
