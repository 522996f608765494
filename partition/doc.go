// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package partition - materialise partitions into memory
//
// each partition of the store is read completely by a single forward
// scan into a Dataset before any hashing starts
package partition
