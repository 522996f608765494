// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package partition

// Dataset - the full contents of one partition at load time
//
// key → value; not modified after loading
type Dataset map[string][]byte

// Size - total bytes of keys and values
func (d Dataset) Size() uint64 {
	n := uint64(0)
	for key, value := range d {
		n += uint64(len(key) + len(value))
	}
	return n
}
