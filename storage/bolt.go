// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/bitmark-inc/dbhasher/fault"
)

// how long to wait for the file lock
const boltTimeout = 5 * time.Second

// each partition is a top level bucket
type boltStore struct {
	sync.RWMutex
	db      *bolt.DB
	handles []*Handle
	closed  bool
}

func openBolt(path string, readOnly bool) (database, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout:  boltTimeout,
		ReadOnly: readOnly,
	})
	if nil != err {
		return nil, err
	}
	return &boltStore{
		db:      db,
		handles: make([]*Handle, 0, 8),
	}, nil
}

func (s *boltStore) catalogue() ([]string, error) {
	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return nil, fault.ErrStoreClosed
	}

	names := make([]string, 0, 8)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if nil != err {
		return nil, err
	}
	return names, nil
}

func (s *boltStore) attach(name string) (*Handle, error) {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return nil, fault.ErrStoreClosed
	}

	for _, h := range s.handles {
		if name == h.name {
			return h, nil
		}
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		if nil == tx.Bucket([]byte(name)) {
			return fault.ErrPartitionNotFound
		}
		return nil
	})
	if nil != err {
		return nil, err
	}

	h := NewHandle(name)
	s.handles = append(s.handles, h)
	return h, nil
}

// Partitions - the attached partitions in attach order
func (s *boltStore) Partitions() []*Handle {
	s.RLock()
	defer s.RUnlock()
	return append([]*Handle(nil), s.handles...)
}

// CreatePartition - add a new empty bucket and attach it
func (s *boltStore) CreatePartition(name string) (*Handle, error) {
	if "" == name {
		return nil, fault.ErrInvalidPartitionName
	}

	s.Lock()
	defer s.Unlock()
	if s.closed {
		return nil, fault.ErrStoreClosed
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucket([]byte(name))
		if bolt.ErrBucketExists == err {
			return fault.ErrPartitionExists
		}
		return err
	})
	if nil != err {
		return nil, err
	}

	h := NewHandle(name)
	s.handles = append(s.handles, h)
	return h, nil
}

// Scan - run a function on all elements of a bucket
func (s *boltStore) Scan(h *Handle, f func(key []byte, value []byte) error) error {
	if nil == h {
		return fault.ErrInvalidHandle
	}

	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return fault.ErrStoreClosed
	}

	return s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(h.name))
		if nil == bucket {
			return fault.ErrPartitionNotFound
		}
		return bucket.ForEach(func(key []byte, value []byte) error {

			// nested bucket
			if nil == value {
				return nil
			}

			// only valid for the life of the transaction
			dataKey := make([]byte, len(key))
			copy(dataKey, key)

			dataValue := make([]byte, len(value))
			copy(dataValue, value)

			return f(dataKey, dataValue)
		})
	})
}

// Put - store a key/value bytes pair in a bucket
//
// concurrent callers are coalesced into shared write transactions
func (s *boltStore) Put(h *Handle, key []byte, value []byte) error {
	if nil == h {
		return fault.ErrInvalidHandle
	}

	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return fault.ErrStoreClosed
	}

	return s.db.Batch(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(h.name))
		if nil == bucket {
			return fault.ErrPartitionNotFound
		}
		return bucket.Put(key, value)
	})
}

// Close - release the file
func (s *boltStore) Close() error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
