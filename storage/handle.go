// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// Handle - reference to one partition of an open store
//
// identity is the partition name, a handle is only valid for the
// store that returned it
type Handle struct {
	name   string
	prefix []byte // start of key range, included in the range
	limit  []byte // end of key range, excluded from the range
}

// Name - the partition name
func (h *Handle) Name() string {
	return h.name
}

// String - for logging
func (h *Handle) String() string {
	return h.name
}

// NewHandle - a handle that addresses a partition by name only
//
// used by stores that keep partitions in separate namespaces
func NewHandle(name string) *Handle {
	return &Handle{
		name: name,
	}
}

// make a handle for a keyspace engine from its catalogue number
func newKeyspaceHandle(name string, id uint32) *Handle {
	prefix := make([]byte, 5)
	prefix[0] = dataTag
	binary.BigEndian.PutUint32(prefix[1:], id)

	limit := []byte{dataTag + 1}
	if id < ^uint32(0) {
		limit = make([]byte, 5)
		limit[0] = dataTag
		binary.BigEndian.PutUint32(limit[1:], id+1)
	}

	return &Handle{
		name:   name,
		prefix: prefix,
		limit:  limit,
	}
}

// prepend the prefix onto the key
func (h *Handle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, len(h.prefix), len(h.prefix)+len(key))
	copy(prefixedKey, h.prefix)
	return append(prefixedKey, key...)
}
