// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package field

import "time"

// frameGate caps executed ticks to a target rate. Unlike a token bucket it
// carries no credit: a tick runs only once a full interval has passed since
// the previous executed tick.
type frameGate struct {
	interval time.Duration
	last     time.Time
	primed   bool
}

// setInterval changes the target spacing and keeps the last executed time.
func (g *frameGate) setInterval(d time.Duration) {
	g.interval = max(0, d)
}

func (g *frameGate) allow(now time.Time) bool {
	if g.primed && now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	g.primed = true
	return true
}
