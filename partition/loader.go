// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package partition

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/bitmark-inc/dbhasher/storage"
	"github.com/bitmark-inc/logger"
)

// Load - read every element of one partition
func Load(store storage.Store, h *storage.Handle) (Dataset, error) {
	d := make(Dataset)
	err := store.Scan(h, func(key []byte, value []byte) error {
		d[string(key)] = value
		return nil
	})
	if nil != err {
		return nil, err
	}
	return d, nil
}

// LoadAll - one dataset for each handle in the same order
//
// any scan error aborts the whole load
func LoadAll(log *logger.L, store storage.Store, handles []*storage.Handle) ([]Dataset, error) {
	datasets := make([]Dataset, 0, len(handles))
	total := uint64(0)

	for _, h := range handles {
		d, err := Load(store, h)
		if nil != err {
			log.Errorf("partition: %q  load error: %s", h.Name(), err)
			return nil, fmt.Errorf("partition: %q  load error: %w", h.Name(), err)
		}

		size := d.Size()
		total += size
		log.Infof("partition: %q  entries: %d  size: %s", h.Name(), len(d), humanize.Bytes(size))

		datasets = append(datasets, d)
	}

	log.Infof("loaded partitions: %d  total size: %s", len(datasets), humanize.Bytes(total))
	return datasets, nil
}
