// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// dbhash - replace every value in a database by a digest of its entry
//
// every partition of the configured database is read into memory,
// then a fixed number of workers each claim whole partitions and
// overwrite each value with the hex digest of key ++ value
//
// commands:
//
//	run                          rehash all partitions (default)
//	list                         show the partitions of the database
//	generate [N [M]]             create N partitions of M random entries
//	version                      show the program version
//	help                         show usage
package main
