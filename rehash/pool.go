// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rehash

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/dbhasher/background"
	"github.com/bitmark-inc/dbhasher/counter"
	"github.com/bitmark-inc/dbhasher/digest"
	"github.com/bitmark-inc/dbhasher/fault"
	"github.com/bitmark-inc/dbhasher/partition"
	"github.com/bitmark-inc/dbhasher/storage"
	"github.com/bitmark-inc/dbhasher/workqueue"
	"github.com/bitmark-inc/logger"
)

// Options - parameters of a run
type Options struct {
	Threads         int           // number of workers, at least one
	Hasher          digest.Hasher // nil selects digest.Default
	WritesPerSecond int           // zero means unlimited
}

// Pool - one rehash run over an open store
type Pool struct {
	written counter.Counter // first for 64 bit alignment
	sync.Mutex
	log     *logger.L
	store   storage.Store
	options Options
	running *background.T
	started bool
	stopped bool
}

// New - validate options and create a pool
//
// the thread count is fixed, it is not adjusted to the number of
// partitions
func New(store storage.Store, options Options) (*Pool, error) {
	if options.Threads < 1 {
		return nil, fault.ErrInvalidThreadCount
	}

	if nil == options.Hasher {
		h, err := digest.New(digest.Default)
		if nil != err {
			return nil, err
		}
		options.Hasher = h
	}

	return &Pool{
		log:     logger.New("rehash"),
		store:   store,
		options: options,
	}, nil
}

// Run - create a pool and run it to completion
func Run(store storage.Store, options Options) (*Report, error) {
	p, err := New(store, options)
	if nil != err {
		return nil, err
	}
	return p.Run()
}

// Run - load all partitions, start the workers and wait for them
//
// a load error is returned without starting any worker.  Otherwise
// the report holds one outcome per partition and the error is
// fault.ErrPartitionsFailed if any partition failed or was skipped.
func (p *Pool) Run() (*Report, error) {
	p.Lock()
	if p.started {
		p.Unlock()
		return nil, fault.ErrAlreadyStarted
	}
	p.started = true
	p.Unlock()

	handles := p.store.Partitions()
	p.log.Infof("partitions: %d  threads: %d  algorithm: %s", len(handles), p.options.Threads, p.options.Hasher.Algorithm())

	datasets, err := partition.LoadAll(logger.New("loader"), p.store, handles)
	if nil != err {
		p.log.Criticalf("load error: %s", err)
		return nil, err
	}

	// fully populated before any worker exists
	queue := workqueue.New()
	for i, h := range handles {
		if err := queue.Push(h, datasets[i]); nil != err {
			return nil, err
		}
	}
	queue.Close()

	limiter := newLimiter(p.options.WritesPerSecond)

	workers := make([]*worker, p.options.Threads)
	processes := make(background.Processes, len(workers))
	for i := range workers {
		workers[i] = &worker{
			index:   i,
			log:     logger.New(fmt.Sprintf("worker-%d", i)),
			queue:   queue,
			store:   p.store,
			hasher:  p.options.Hasher,
			limiter: limiter,
			written: &p.written,
		}
		processes[i] = workers[i]
	}

	// a stop before this point leaves every partition unclaimed
	p.Lock()
	if !p.stopped {
		p.running = background.Start(processes, nil)
	}
	running := p.running
	p.Unlock()

	if nil != running {
		running.Wait()
	}

	unclaimed := queue.Drain()
	if len(unclaimed) > 0 {
		p.log.Warnf("unclaimed partitions: %d", len(unclaimed))
	}

	report := collect(handles, workers)
	failed := report.Failed()
	for _, o := range failed {
		p.log.Errorf("partition: %q  failed: %s", o.Partition, o.Err)
	}
	p.log.Infof("writes: %d  failed partitions: %d", report.Writes(), len(failed))

	if len(failed) > 0 {
		return report, fault.ErrPartitionsFailed
	}
	return report, nil
}

// Written - number of values written so far
func (p *Pool) Written() uint64 {
	return p.written.Uint64()
}

// Stop - workers finish their current partition and claim no more
func (p *Pool) Stop() {
	p.Lock()
	p.stopped = true
	running := p.running
	p.Unlock()

	if nil != running {
		running.Stop()
	}
}

// every claim in handle order, a handle never claimed gets one
// skipped outcome
//
// a partition claimed more than once appears more than once, so the
// report has exactly one outcome per handle only while claims are
// exclusive
func collect(handles []*storage.Handle, workers []*worker) *Report {
	claims := make(map[string][]Outcome)
	for _, w := range workers {
		for _, o := range w.outcomes {
			claims[o.Partition] = append(claims[o.Partition], o)
		}
	}

	report := &Report{
		Outcomes: make([]Outcome, 0, len(handles)),
	}
	for _, h := range handles {
		outcomes, ok := claims[h.Name()]
		if !ok {
			outcomes = []Outcome{{
				Partition: h.Name(),
				Worker:    -1,
				Err:       fault.ErrPartitionSkipped,
			}}
		}
		report.Outcomes = append(report.Outcomes, outcomes...)
	}
	return report
}
