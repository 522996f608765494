// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"errors"

	"github.com/cockroachdb/pebble/v2"
)

type pebbleKeyspace struct {
	db *pebble.DB
}

func openPebble(path string, readOnly bool) (database, error) {
	opts := &pebble.Options{
		ErrorIfNotExists: readOnly,
		ReadOnly:         readOnly,
	}

	db, err := pebble.Open(path, opts)
	if nil != err {
		return nil, err
	}
	return newKeyspaceStore(&pebbleKeyspace{db: db}), nil
}

func (p *pebbleKeyspace) get(key []byte) ([]byte, error) {
	value, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	} else if nil != err {
		return nil, err
	}

	// the buffer is released by Close
	result := make([]byte, len(value))
	copy(result, value)
	closer.Close()
	return result, nil
}

func (p *pebbleKeyspace) put(key []byte, value []byte) error {
	return p.db.Set(key, value, pebble.Sync)
}

func (p *pebbleKeyspace) iterate(start []byte, limit []byte, f func([]byte, []byte) error) error {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: limit,
	})
	if nil != err {
		return err
	}

iterating:
	for iter.First(); iter.Valid(); iter.Next() {
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
	if nil == err {
		err = iter.Error()
	}
	if closeErr := iter.Close(); nil == err {
		err = closeErr
	}
	return err
}

func (p *pebbleKeyspace) close() error {
	return p.db.Close()
}
