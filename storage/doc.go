// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
//
// maintain separate partitions ("column families") of a number of
// elements in key->value form
//
// Three engines are supported:
//
//   leveldb  - one LevelDB directory split into keyspaces
//   pebble   - one Pebble directory split into keyspaces (same layout)
//   bolt     - one BoltDB file, each partition is a top level bucket
//
// Notes for the keyspace engines:
// 1. ++           = concatenation of byte data
// 2. id           = partition number as big endian uint32 (4 bytes)
//                   allocated in creation order starting from 1
// 3. name         = partition name bytes (non-empty)
//
// Catalogue:
//
//   0x00 ++ F ++ name          - partition catalogue
//                                data: id
//
// Data:
//
//   0x01 ++ id ++ key          - partition element
//                                data: value
//
// The range of a partition is [0x01 ++ id, 0x01 ++ (id + 1)) so a
// forward iteration over that range visits every element of that
// partition and nothing else.
package storage
