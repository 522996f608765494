// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rehash

// Outcome - result of processing one partition
type Outcome struct {
	Partition string
	Worker    int   // index of the worker that claimed it, -1 if never claimed
	Entries   int   // number of values written
	Err       error // nil on success
}

// Report - all outcomes of one run in partition order
type Report struct {
	Outcomes []Outcome
}

// Failed - outcomes that did not complete
func (r *Report) Failed() []Outcome {
	failed := make([]Outcome, 0)
	for _, o := range r.Outcomes {
		if nil != o.Err {
			failed = append(failed, o)
		}
	}
	return failed
}

// Writes - total number of values written
func (r *Report) Writes() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.Entries
	}
	return n
}

// Workers - number of distinct workers that claimed a partition
func (r *Report) Workers() int {
	seen := make(map[int]struct{})
	for _, o := range r.Outcomes {
		if o.Worker >= 0 {
			seen[o.Worker] = struct{}{}
		}
	}
	return len(seen)
}
