// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rehash

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/dbhasher/counter"
	"github.com/bitmark-inc/dbhasher/digest"
	"github.com/bitmark-inc/dbhasher/storage"
	"github.com/bitmark-inc/dbhasher/workqueue"
	"github.com/bitmark-inc/logger"
)

// one pool member, identical logic in every worker
type worker struct {
	index    int
	log      *logger.L
	queue    *workqueue.Queue
	store    storage.Store
	hasher   digest.Hasher
	limiter  *rate.Limiter
	written  *counter.Counter // shared by all workers
	outcomes []Outcome // only read after the worker has returned
}

// Run - claim partitions until the queue is exhausted or shutdown
func (w *worker) Run(args interface{}, shutdown <-chan struct{}) {

	w.log.Debug("starting…")

loop:
	for {
		select {
		case <-shutdown:
			w.log.Info("shutdown requested")
			break loop
		default:
		}

		// only the claim is made under the queue lock
		item, ok := w.queue.Pop()
		if !ok {
			break loop
		}

		outcome := w.process(item)
		w.outcomes = append(w.outcomes, outcome)
	}

	w.log.Debugf("finished  partitions: %d", len(w.outcomes))
}

// write the digest of every element of one dataset
//
// the first write error abandons the rest of this partition
func (w *worker) process(item workqueue.Item) Outcome {
	name := item.Handle.Name()
	outcome := Outcome{
		Partition: name,
		Worker:    w.index,
	}

	w.log.Infof("partition: %q  entries: %d", name, len(item.Dataset))

	for key, value := range item.Dataset {
		k := []byte(key)
		hash := w.hasher.Sum(k, value)
		w.log.Tracef("partition: %q  key: %x  hash: %s", name, k, hash)

		rateLimit(w.limiter)

		if err := w.store.Put(item.Handle, k, []byte(hash)); nil != err {
			outcome.Err = err
			break
		}
		outcome.Entries += 1
		w.written.Increment()
	}

	if nil != outcome.Err {
		w.log.Errorf("partition: %q  written: %d of %d  error: %s", name, outcome.Entries, len(item.Dataset), outcome.Err)
	} else {
		w.log.Infof("partition: %q  written: %d", name, outcome.Entries)
	}
	return outcome
}
