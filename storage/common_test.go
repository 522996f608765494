// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/dbhasher/storage"
)

// every engine is run through the same tests
var engines = []storage.Engine{
	storage.LevelDB,
	storage.Pebble,
	storage.Bolt,
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// database path inside the per-test temporary directory
func databasePath(t *testing.T, engine storage.Engine) string {
	return filepath.Join(t.TempDir(), "test."+string(engine))
}

// create a database with the given partitions and contents
func populate(t *testing.T, engine storage.Engine, path string, data map[string][]stringElement, order []string) {
	s, err := storage.Create(engine, path)
	require.NoError(t, err, "create database")
	defer s.Close()

	for _, name := range order {
		h, err := s.CreatePartition(name)
		require.NoError(t, err, "create partition: %q", name)
		for _, e := range data[name] {
			err := s.Put(h, []byte(e.key), []byte(e.value))
			require.NoError(t, err, "put: %q", e.key)
		}
	}
}

// read a whole partition as strings
func scanAll(t *testing.T, s storage.Store, h *storage.Handle) map[string]string {
	result := make(map[string]string)
	err := s.Scan(h, func(key []byte, value []byte) error {
		result[string(key)] = string(value)
		return nil
	})
	require.NoError(t, err, "scan: %s", h)
	return result
}
