// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/dbhasher/digest"
	"github.com/bitmark-inc/dbhasher/fault"
	"github.com/bitmark-inc/dbhasher/storage"
)

func writeConfiguration(t *testing.T, contents string) (string, string) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "dbhash.conf")
	require.NoError(t, os.WriteFile(fileName, []byte(contents), 0600), "write configuration")
	return dir, fileName
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, fileName := writeConfiguration(t, `return { data_directory = "." }`)

	c, err := getConfiguration(fileName)
	require.NoError(t, err, "configuration")

	assert.Equal(t, dir, c.DataDirectory, "data directory")
	assert.Equal(t, defaultThreads, c.Threads, "threads")
	assert.Equal(t, digest.Default, c.Algorithm, "algorithm")
	assert.Equal(t, string(storage.LevelDB), c.Database.Engine, "engine")
	assert.Equal(t, filepath.Join(dir, defaultDatabaseName), c.Database.Name, "database")
	assert.Equal(t, 0, c.WritesPerSecond, "writes per second")
	assert.Equal(t, filepath.Join(dir, defaultLogDirectory), c.Logging.Directory, "log directory")
	assert.Equal(t, defaultLogFile, c.Logging.File, "log file")
	assert.Equal(t, defaultLogCount, c.Logging.Count, "log count")
	assert.Equal(t, defaultLogSize, c.Logging.Size, "log size")
}

func TestGetConfigurationValues(t *testing.T) {
	dir, fileName := writeConfiguration(t, `
return {
    data_directory = ".",
    database = {
        engine = "Pebble",
        name = "other.pebble",
    },
    threads = 12,
    algorithm = " BLAKE3 ",
    writes_per_second = 500,
    logging = {
        directory = "/var/log/dbhash",
        file = "x.log",
        size = 4096,
        count = 3,
        console = true,
        levels = {
            DEFAULT = "warn",
        },
    },
}
`)

	c, err := getConfiguration(fileName)
	require.NoError(t, err, "configuration")

	assert.Equal(t, string(storage.Pebble), c.Database.Engine, "engine")
	assert.Equal(t, filepath.Join(dir, "other.pebble"), c.Database.Name, "database")
	assert.Equal(t, 12, c.Threads, "threads")
	assert.Equal(t, digest.BLAKE3, c.Algorithm, "algorithm")
	assert.Equal(t, 500, c.WritesPerSecond, "writes per second")
	assert.Equal(t, "/var/log/dbhash", c.Logging.Directory, "absolute log directory")
	assert.Equal(t, "x.log", c.Logging.File, "log file")
	assert.Equal(t, 4096, c.Logging.Size, "log size")
	assert.Equal(t, 3, c.Logging.Count, "log count")
	assert.True(t, c.Logging.Console, "console")
	assert.Equal(t, "warn", c.Logging.Levels["DEFAULT"], "default level")
}

func TestGetConfigurationErrors(t *testing.T) {
	items := []struct {
		contents string
		expected error
	}{
		{`return { data_directory = "" }`, fault.ErrInvalidDataDirectory},
		{`return { data_directory = "~" }`, fault.ErrInvalidDataDirectory},
		{`return { data_directory = ".", threads = 0 }`, fault.ErrInvalidThreadCount},
		{`return { data_directory = ".", algorithm = "md5" }`, fault.ErrInvalidAlgorithm},
		{`return { data_directory = ".", database = { engine = "rocksdb" } }`, fault.ErrInvalidEngine},
		{`return { data_directory = ".", database = { name = "sub/x.leveldb" } }`, fault.ErrNotPlainName},
		{`return { data_directory = ".", logging = { file = "../x.log" } }`, fault.ErrNotPlainName},
		{`return "no table"`, fault.ErrConfigurationNotTable},
	}

	for i, item := range items {
		_, fileName := writeConfiguration(t, item.contents)
		_, err := getConfiguration(fileName)
		assert.True(t, errors.Is(err, item.expected), "item: %d  error: %v", i, err)
	}
}

func TestGetConfigurationMissingDirectory(t *testing.T) {
	_, fileName := writeConfiguration(t, `return { data_directory = "`+filepath.Join(t.TempDir(), "absent")+`" }`)

	_, err := getConfiguration(fileName)
	assert.Error(t, err, "missing data directory")
}

func TestGetCount(t *testing.T) {
	n, err := getCount(nil, 0, 7)
	require.NoError(t, err, "default")
	assert.Equal(t, 7, n, "default value")

	n, err = getCount([]string{"3", "25"}, 1, 7)
	require.NoError(t, err, "second argument")
	assert.Equal(t, 25, n, "second value")

	_, err = getCount([]string{"0"}, 0, 7)
	assert.True(t, errors.Is(err, fault.ErrInvalidCount), "zero: %v", err)

	_, err = getCount([]string{"many"}, 0, 7)
	assert.Error(t, err, "not a number")
}
