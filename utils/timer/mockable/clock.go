// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import "time"

// Clock wraps the wall clock so that tests can pin it. The zero value
// follows real time.
type Clock struct {
	faked bool
	time  time.Time
}

// Set pins the clock to [t].
func (c *Clock) Set(t time.Time) { c.faked = true; c.time = t }

// Advance moves a pinned clock forward by [d]. It pins an unpinned clock to
// the current time first.
func (c *Clock) Advance(d time.Duration) {
	if !c.faked {
		c.Set(time.Now())
	}
	c.time = c.time.Add(d)
}

// Sync returns the clock to real time.
func (c *Clock) Sync() { c.faked = false }

func (c *Clock) Time() time.Time {
	if c.faked {
		return c.time
	}
	return time.Now()
}

// UnixMilli returns the time in milliseconds since the epoch, clamped to be
// non-negative.
func (c *Clock) UnixMilli() uint64 {
	return uint64(max(c.Time().UnixMilli(), 0))
}
