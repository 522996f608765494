// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run a set of goroutines that share one
// shutdown signal and can be joined
package background

import (
	"sync"
)

// Process - a background process
//
// Run must return promptly once shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a started set of processes
type T struct {
	stopOnce sync.Once
	shutdown chan struct{}
	finished []chan struct{}
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make(chan struct{}),
		finished: make([]chan struct{}, len(processes)),
	}

	for i, p := range processes {
		finished := make(chan struct{})
		register.finished[i] = finished
		go func(p Process) {
			defer close(finished)
			p.Run(args, register.shutdown)
		}(p)
	}
	return register
}

// Wait - block until every process has returned
func (t *T) Wait() {
	for _, finished := range t.finished {
		<-finished
	}
}

// Stop - signal shutdown and wait for all processes to return
//
// safe to call more than once and concurrently with Wait
func (t *T) Stop() {
	t.stopOnce.Do(func() {
		close(t.shutdown)
	})
	t.Wait()
}
