// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/bitmark-inc/dbhasher/fault"
)

// key tags
const (
	catalogueTag = 0x00
	dataTag      = 0x01
)

var (
	cataloguePrefix = []byte{catalogueTag, 'F'}
	catalogueLimit  = []byte{catalogueTag, 'F' + 1}
)

// the operations an ordered key/value engine must provide
//
// iterate must pass copies of the key and value
type keyspace interface {
	get([]byte) ([]byte, error) // nil, nil if not found
	put([]byte, []byte) error
	iterate(start []byte, limit []byte, f func([]byte, []byte) error) error
	close() error
}

// a store that splits one ordered engine into prefixed partitions
type keyspaceStore struct {
	sync.RWMutex
	space   keyspace
	handles []*Handle
	closed  bool
}

type catalogueEntry struct {
	name string
	id   uint32
}

func newKeyspaceStore(space keyspace) *keyspaceStore {
	return &keyspaceStore{
		space:   space,
		handles: make([]*Handle, 0, 8),
	}
}

func catalogueKey(name string) []byte {
	key := make([]byte, len(cataloguePrefix), len(cataloguePrefix)+len(name))
	copy(key, cataloguePrefix)
	return append(key, name...)
}

// all catalogue entries in creation order
func (s *keyspaceStore) entries() ([]catalogueEntry, error) {
	entries := make([]catalogueEntry, 0, 8)
	err := s.space.iterate(cataloguePrefix, catalogueLimit, func(key []byte, value []byte) error {
		if 4 != len(value) || len(key) <= len(cataloguePrefix) {
			return fault.ErrCatalogueRecordCorrupt
		}
		entries = append(entries, catalogueEntry{
			name: string(key[len(cataloguePrefix):]),
			id:   binary.BigEndian.Uint32(value),
		})
		return nil
	})
	if nil != err {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id < entries[j].id
	})
	return entries, nil
}

func (s *keyspaceStore) catalogue() ([]string, error) {
	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return nil, fault.ErrStoreClosed
	}

	entries, err := s.entries()
	if nil != err {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names, nil
}

func (s *keyspaceStore) attach(name string) (*Handle, error) {
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

	value, err := s.space.get(catalogueKey(name))
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, fault.ErrPartitionNotFound
	}
	if 4 != len(value) {
		return nil, fault.ErrCatalogueRecordCorrupt
	}

	h := newKeyspaceHandle(name, binary.BigEndian.Uint32(value))
	s.handles = append(s.handles, h)
	return h, nil
}

// Partitions - the attached partitions in attach order
func (s *keyspaceStore) Partitions() []*Handle {
	s.RLock()
	defer s.RUnlock()
	return append([]*Handle(nil), s.handles...)
}

// CreatePartition - add a new empty partition and attach it
func (s *keyspaceStore) CreatePartition(name string) (*Handle, error) {
	if "" == name {
		return nil, fault.ErrInvalidPartitionName
	}

	s.Lock()
	defer s.Unlock()
	if s.closed {
		return nil, fault.ErrStoreClosed
	}

	entries, err := s.entries()
	if nil != err {
		return nil, err
	}

	id := uint32(1)
	for _, e := range entries {
		if name == e.name {
			return nil, fault.ErrPartitionExists
		}
		if e.id >= id {
			id = e.id + 1
		}
	}

	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, id)
	if err := s.space.put(catalogueKey(name), value); nil != err {
		return nil, err
	}

	h := newKeyspaceHandle(name, id)
	s.handles = append(s.handles, h)
	return h, nil
}

// Scan - run a function on all elements of a partition
func (s *keyspaceStore) Scan(h *Handle, f func(key []byte, value []byte) error) error {
	if nil == h || nil == h.prefix {
		return fault.ErrInvalidHandle
	}

	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return fault.ErrStoreClosed
	}

	n := len(h.prefix)
	return s.space.iterate(h.prefix, h.limit, func(key []byte, value []byte) error {
		return f(key[n:], value) // strip the prefix
	})
}

// Put - store a key/value bytes pair in a partition
func (s *keyspaceStore) Put(h *Handle, key []byte, value []byte) error {
	if nil == h || nil == h.prefix {
		return fault.ErrInvalidHandle
	}

	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return fault.ErrStoreClosed
	}

	return s.space.put(h.prefixKey(key), value)
}

// Close - release the engine
func (s *keyspaceStore) Close() error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.space.close()
}
