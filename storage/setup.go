// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/bitmark-inc/dbhasher/fault"
)

// Engine - name of a storage engine
type Engine string

// supported engines
const (
	LevelDB Engine = "leveldb"
	Pebble  Engine = "pebble"
	Bolt    Engine = "bolt"
)

// database access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// an opened engine before any partitions are attached
type database interface {
	Store
	catalogue() ([]string, error)
	attach(string) (*Handle, error)
}

// ParseEngine - convert a configuration string to an engine
func ParseEngine(name string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(name))); e {
	case LevelDB, Pebble, Bolt:
		return e, nil
	case "":
		return LevelDB, nil
	default:
		return "", fault.ErrInvalidEngine
	}
}

// ListPartitions - names of all partitions currently in the database
//
// the database is opened read-only and closed before returning
func ListPartitions(engine Engine, path string) ([]string, error) {
	if !exists(path) {
		return nil, fault.ErrDatabaseNotFound
	}

	db, err := open(engine, path, ReadOnly)
	if nil != err {
		return nil, err
	}
	defer db.Close()

	return db.catalogue()
}

// Open - open an existing database for read/write and attach the
// named partitions
//
// fails if the database does not exist or any partition is missing
func Open(engine Engine, path string, names []string) (Store, error) {
	if !exists(path) {
		return nil, fault.ErrDatabaseNotFound
	}

	db, err := open(engine, path, ReadWrite)
	if nil != err {
		return nil, err
	}

	for _, name := range names {
		if _, err := db.attach(name); nil != err {
			db.Close()
			return nil, fmt.Errorf("partition: %q  error: %w", name, err)
		}
	}
	return db, nil
}

// Create - open a database for read/write, creating it if necessary,
// and attach every partition it already contains
func Create(engine Engine, path string) (Store, error) {
	db, err := open(engine, path, ReadWrite)
	if nil != err {
		return nil, err
	}

	names, err := db.catalogue()
	if nil != err {
		db.Close()
		return nil, err
	}
	for _, name := range names {
		if _, err := db.attach(name); nil != err {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func open(engine Engine, path string, readOnly bool) (database, error) {
	switch engine {
	case LevelDB:
		return openLevelDB(path, readOnly)
	case Pebble:
		return openPebble(path, readOnly)
	case Bolt:
		return openBolt(path, readOnly)
	default:
		return nil, fault.ErrInvalidEngine
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return nil == err
}
