// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

type levelDBKeyspace struct {
	db *leveldb.DB
}

func openLevelDB(path string, readOnly bool) (database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(path, opt)
	if nil != err {
		return nil, err
	}
	return newKeyspaceStore(&levelDBKeyspace{db: db}), nil
}

func (l *levelDBKeyspace) get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

func (l *levelDBKeyspace) put(key []byte, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *levelDBKeyspace) iterate(start []byte, limit []byte, f func([]byte, []byte) error) error {
	maxRange := ldb_util.Range{
		Start: start, // Start of key range, included in the range
		Limit: limit, // Limit of key range, excluded from the range
	}

	iter := l.db.NewIterator(&maxRange, nil)

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key))
		copy(dataKey, key)

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

func (l *levelDBKeyspace) close() error {
	return l.db.Close()
}
