// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package workqueue - hand out partitions to workers
//
// the queue holds two parallel lists, partition handles and their
// datasets, guarded by a single mutex.  Only the removal of the front
// pair happens under the lock.  The queue is filled completely and
// closed before any worker starts; a closed and empty queue ends every
// worker.
package workqueue

import (
	"sync"

	"github.com/bitmark-inc/dbhasher/fault"
	"github.com/bitmark-inc/dbhasher/partition"
	"github.com/bitmark-inc/dbhasher/storage"
)

// Item - one unit of work
type Item struct {
	Handle  *storage.Handle
	Dataset partition.Dataset
}

// Queue - the shared work list
type Queue struct {
	sync.Mutex
	ready    *sync.Cond
	handles  []*storage.Handle
	datasets []partition.Dataset
	closed   bool
}

// New - an empty open queue
func New() *Queue {
	q := &Queue{
		handles:  make([]*storage.Handle, 0, 16),
		datasets: make([]partition.Dataset, 0, 16),
	}
	q.ready = sync.NewCond(&q.Mutex)
	return q
}

// Push - append one pair to the back of the queue
func (q *Queue) Push(h *storage.Handle, d partition.Dataset) error {
	q.Lock()
	defer q.Unlock()

	if q.closed {
		return fault.ErrQueueClosed
	}

	q.handles = append(q.handles, h)
	q.datasets = append(q.datasets, d)
	q.ready.Signal()
	return nil
}

// Close - no more items will be pushed
func (q *Queue) Close() {
	q.Lock()
	q.closed = true
	q.ready.Broadcast()
	q.Unlock()
}

// TryPop - remove the front pair if there is one
func (q *Queue) TryPop() (Item, bool) {
	q.Lock()
	defer q.Unlock()
	return q.pop()
}

// Pop - remove the front pair, waiting for one if necessary
//
// returns false once the queue is closed and empty
func (q *Queue) Pop() (Item, bool) {
	q.Lock()
	defer q.Unlock()

	for {
		if item, ok := q.pop(); ok {
			return item, true
		}
		if q.closed {
			return Item{}, false
		}
		q.ready.Wait()
	}
}

// IsEmpty - observation only, a following pop may still fail
func (q *Queue) IsEmpty() bool {
	q.Lock()
	defer q.Unlock()
	return 0 == len(q.handles)
}

// Len - number of items not yet claimed
func (q *Queue) Len() int {
	q.Lock()
	defer q.Unlock()
	return len(q.handles)
}

// Drain - remove and return every remaining item
func (q *Queue) Drain() []Item {
	q.Lock()
	defer q.Unlock()

	items := make([]Item, 0, len(q.handles))
	for {
		item, ok := q.pop()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

// must hold lock; both lists shrink together
func (q *Queue) pop() (Item, bool) {
	if 0 == len(q.handles) {
		return Item{}, false
	}

	item := Item{
		Handle:  q.handles[0],
		Dataset: q.datasets[0],
	}

	// release references held by the backing arrays
	q.handles[0] = nil
	q.datasets[0] = nil

	q.handles = q.handles[1:]
	q.datasets = q.datasets[1:]
	return item, true
}

// must hold lock
func (q *Queue) balanced() bool {
	return len(q.handles) == len(q.datasets)
}
