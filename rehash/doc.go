// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rehash - replace every value in a store by its digest
//
// All partitions are loaded into memory first, then a fixed number of
// workers claim one partition at a time from a shared work queue and
// write digest(key ++ value) back under each key.  A partition is
// only ever processed by the worker that claimed it, so no two
// workers write the same key.
//
// The pass is not idempotent: running it again hashes the previous
// digests.
package rehash
