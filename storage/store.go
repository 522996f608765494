// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/bitmark-inc/dbhasher/storage Store

// Store - an open database with attached partitions
//
// Put is safe for concurrent use on distinct keys.  The scan callback
// receives copies of the key and value and must not write to the
// store.
type Store interface {
	Partitions() []*Handle
	Scan(*Handle, func(key []byte, value []byte) error) error
	Put(h *Handle, key []byte, value []byte) error
	CreatePartition(string) (*Handle, error)
	Close() error
}
