// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package partition_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/dbhasher/partition"
	"github.com/bitmark-inc/dbhasher/storage"
	"github.com/bitmark-inc/dbhasher/storage/mocks"
	"github.com/bitmark-inc/logger"
)

const logCategory = "loader-test"

func TestMain(m *testing.M) {
	logDirectory, err := os.MkdirTemp("", "partition-log")
	if nil != err {
		panic(fmt.Sprintf("log directory creation failed: %s", err))
	}

	logConfig := logger.Configuration{
		Directory: logDirectory,
		File:      "partition.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}
	if err := logger.Initialise(logConfig); err != nil {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}

	result := m.Run()

	logger.Finalise()
	os.RemoveAll(logDirectory)
	os.Exit(result)
}

func setupStore(t *testing.T, contents map[string]map[string]string, order []string) storage.Store {
	path := filepath.Join(t.TempDir(), "loader.leveldb")
	s, err := storage.Create(storage.LevelDB, path)
	require.NoError(t, err, "create")

	for _, name := range order {
		h, err := s.CreatePartition(name)
		require.NoError(t, err, "create partition: %q", name)
		for k, v := range contents[name] {
			require.NoError(t, s.Put(h, []byte(k), []byte(v)), "put")
		}
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadAll(t *testing.T) {
	contents := map[string]map[string]string{
		"A": {"x": "1", "z": "26"},
		"B": {"y": "2"},
		"C": {},
	}
	order := []string{"A", "B", "C"}
	s := setupStore(t, contents, order)

	datasets, err := partition.LoadAll(logger.New(logCategory), s, s.Partitions())
	require.NoError(t, err, "load all")
	require.Equal(t, len(order), len(datasets), "one dataset per partition")

	for i, name := range order {
		expected := partition.Dataset{}
		for k, v := range contents[name] {
			expected[k] = []byte(v)
		}
		assert.Equal(t, expected, datasets[i], "dataset: %d for: %q", i, name)
	}
	assert.Equal(t, uint64(5), datasets[0].Size(), "size of A")
}

func TestLoadAllNoPartitions(t *testing.T) {
	s := setupStore(t, nil, nil)

	datasets, err := partition.LoadAll(logger.New(logCategory), s, s.Partitions())
	require.NoError(t, err, "load all")
	assert.Empty(t, datasets, "datasets")
}

func TestLoadAllScanFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	scanError := errors.New("disk on fire")
	good := storage.NewHandle("good")
	bad := storage.NewHandle("bad")
	never := storage.NewHandle("never")

	s := mocks.NewMockStore(ctl)
	s.EXPECT().Scan(good, gomock.Any()).Return(nil).Times(1)
	s.EXPECT().Scan(bad, gomock.Any()).Return(scanError).Times(1)

	datasets, err := partition.LoadAll(logger.New(logCategory), s, []*storage.Handle{good, bad, never})
	assert.True(t, errors.Is(err, scanError), "unexpected error: %v", err)
	assert.Nil(t, datasets, "datasets")
}
