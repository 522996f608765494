// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/dbhasher/fault"
	"github.com/bitmark-inc/dbhasher/storage"
	"github.com/bitmark-inc/logger"
)

const generatedPrefix = "partition-"

// add partitions of random entries to a store
//
// partitions are numbered after the highest generated partition that
// already exists and are created in order, then filled in parallel
func generate(log *logger.L, store storage.Store, partitions int, entries int, threads int) ([]*storage.Handle, error) {
	if partitions < 1 || entries < 1 {
		return nil, fault.ErrInvalidCount
	}
	if threads < 1 {
		return nil, fault.ErrInvalidThreadCount
	}

	first := nextNumber(store.Partitions())
	handles := make([]*storage.Handle, 0, partitions)
	for i := 0; i < partitions; i += 1 {
		name := fmt.Sprintf("%s%04d", generatedPrefix, first+i)
		h, err := store.CreatePartition(name)
		if nil != err {
			return nil, fmt.Errorf("partition: %q  create error: %w", name, err)
		}
		handles = append(handles, h)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(threads)

	for _, h := range handles {
		h := h
		g.Go(func() error {
			for j := 0; j < entries; j += 1 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				key := uuid.New()
				value := fmt.Sprintf("%d:%s", j, uuid.NewString())
				if err := store.Put(h, key[:], []byte(value)); nil != err {
					return fmt.Errorf("partition: %q  write error: %w", h.Name(), err)
				}
			}
			log.Infof("partition: %q  entries: %d", h.Name(), entries)
			return nil
		})
	}

	if err := g.Wait(); nil != err {
		return nil, err
	}
	return handles, nil
}

// one more than the highest number used by a generated name
func nextNumber(handles []*storage.Handle) int {
	next := 0
	for _, h := range handles {
		digits := strings.TrimPrefix(h.Name(), generatedPrefix)
		if digits == h.Name() {
			continue
		}
		n, err := strconv.Atoi(digits)
		if nil != err || n < 0 {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return next
}
