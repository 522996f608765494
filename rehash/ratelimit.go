// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rehash

import (
	"time"

	"golang.org/x/time/rate"
)

// shared by all workers, nil if writes are not limited
func newLimiter(writesPerSecond int) *rate.Limiter {
	if writesPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(writesPerSecond), writesPerSecond)
}

// delay a single write
//
// the burst is never zero so a reservation always succeeds
func rateLimit(limiter *rate.Limiter) {
	if nil == limiter {
		return
	}
	time.Sleep(limiter.Reserve().Delay())
}
